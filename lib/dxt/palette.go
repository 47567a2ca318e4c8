// Copyright 2025 The Dxt Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package dxt

// palette holds a block's four candidate colors as {R, G, B} triples.
type palette [4][3]uint8

// expand565 unpacks a 5:6:5 packed color to 8 bits per channel.
func expand565(c uint16) (r uint8, g uint8, b uint8) {
	return expand5[(c>>11)&0x1F], expand6[(c>>5)&0x3F], expand5[(c>>0)&0x1F]
}

// makePalette returns the palette for the two reference colors c0 and c1.
//
// When c0 > c1, comparing the packed uint16 values, the palette is a four
// step ramp. Otherwise it is a three step ramp and the returned special is
// true: the caller decides what palette entry 3 means. Its RGB is black.
//
// All interpolation uses integer division, rounding down.
func makePalette(c0 uint16, c1 uint16) (p palette, special bool) {
	if c0 > c1 {
		return makeFourColorPalette(c0, c1), false
	}

	r0, g0, b0 := expand565(c0)
	r1, g1, b1 := expand565(c1)
	p[0] = [3]uint8{r0, g0, b0}
	p[1] = [3]uint8{r1, g1, b1}
	p[2] = [3]uint8{
		uint8((uint32(r0) + uint32(r1)) / 2),
		uint8((uint32(g0) + uint32(g1)) / 2),
		uint8((uint32(b0) + uint32(b1)) / 2),
	}
	return p, true
}

// makeFourColorPalette is like makePalette but always produces the four step
// ramp, regardless of how c0 and c1 compare.
func makeFourColorPalette(c0 uint16, c1 uint16) (p palette) {
	r0, g0, b0 := expand565(c0)
	r1, g1, b1 := expand565(c1)
	p[0] = [3]uint8{r0, g0, b0}
	p[1] = [3]uint8{r1, g1, b1}
	p[2] = [3]uint8{
		lerpThird(r0, r1),
		lerpThird(g0, g1),
		lerpThird(b0, b1),
	}
	p[3] = [3]uint8{
		lerpThird(r1, r0),
		lerpThird(g1, g0),
		lerpThird(b1, b0),
	}
	return p
}

// lerpThird returns ((2 * a) + b) / 3, rounding down.
func lerpThird(a uint8, b uint8) uint8 {
	return uint8(((2 * uint32(a)) + uint32(b)) / 3)
}

// makeAlphaTable returns the eight alpha levels for the DXT5 endpoints a0 and
// a1.
//
// When a0 > a1, entries 2 to 7 interpolate in sevenths. Otherwise entries 2
// to 5 interpolate in fifths and entries 6 and 7 are 0x00 and 0xFF.
func makeAlphaTable(a0 uint8, a1 uint8) (t [8]uint8) {
	t[0], t[1] = a0, a1
	x0, x1 := uint32(a0), uint32(a1)

	if a0 > a1 {
		for i := uint32(1); i < 7; i++ {
			t[i+1] = uint8((((7 - i) * x0) + (i * x1)) / 7)
		}
	} else {
		for i := uint32(1); i < 5; i++ {
			t[i+1] = uint8((((5 - i) * x0) + (i * x1)) / 5)
		}
		t[6] = 0x00
		t[7] = 0xFF
	}
	return t
}

// explicitAlpha unpacks DXT3's 16 4-bit alpha values, scaling each from
// [0, 15] to [0, 255]. Each 16-bit little-endian word holds one row, with the
// leftmost pixel in the low nibble.
func explicitAlpha(b *[8]byte) (alphas [16]uint8) {
	for y := 0; y < 4; y++ {
		row := uint32(b[(2*y)+0]) | (uint32(b[(2*y)+1]) << 8)
		for x := 0; x < 4; x++ {
			alphas[(4*y)+x] = uint8(((row >> (4 * x)) & 0x0F) * 17)
		}
	}
	return alphas
}

// Copyright 2025 The Dxt Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package dxt

// The DecodeDXT*Block functions decode one 4×4 block whose top-left pixel is
// at (x, y) in dst, an image that is width pixels wide. dst's stride is width
// pixels, each 3 (LayoutRGB) or 4 (LayoutRGBA) bytes.
//
// The block's footprint must lie within dst. If it doesn't, they panic before
// writing anything. They never write outside of the footprint.
//
// They return the AlphaFlags of the 16 decoded pixels.

// DecodeDXT1Block decodes a DXT1 block.
//
// If transparent is false then dst has LayoutRGB, the returned AlphaFlags are
// zero and, in the three color mode, palette entry 3 is opaque black.
//
// If transparent is true then dst has LayoutRGBA and, in the three color
// mode, palette entry 3 is transparent black.
func DecodeDXT1Block(dst []byte, width int, x int, y int, block *[8]byte, transparent bool) AlphaFlags {
	if !transparent {
		decodeColorRGB(dst[3*((y*width)+x):], 3*width, block)
		return 0
	}
	return decodeColorRGBA(dst[4*((y*width)+x):], 4*width, block, &opaqueAlphas, true)
}

// DecodeDXT3Block decodes a DXT3 block. dst has LayoutRGBA.
//
// Each pixel's alpha comes from the block's explicit 4-bit alpha values and
// is independent of its color. In the three color mode, palette entry 3 is
// black but keeps its explicit alpha.
func DecodeDXT3Block(dst []byte, width int, x int, y int, block *[16]byte) AlphaFlags {
	alphas := explicitAlpha((*[8]byte)(block[0:8]))
	return decodeColorRGBA(dst[4*((y*width)+x):], 4*width, (*[8]byte)(block[8:16]), &alphas, false)
}

// DecodeDXT5Block decodes a DXT5 block. dst has LayoutRGBA.
//
// The color palette is always the four step ramp, whatever the order of the
// two reference colors.
func DecodeDXT5Block(dst []byte, width int, x int, y int, block *[16]byte) (flags AlphaFlags) {
	dst = dst[4*((y*width)+x):]
	stride := 4 * width
	_ = dst[(3*stride)+15]

	alphaTable := makeAlphaTable(block[0], block[1])
	alphaIndexes := readU48LE(block[2:8])
	p := makeFourColorPalette(readU16LE(block[8:10]), readU16LE(block[10:12]))
	colorIndexes := readU32LE(block[12:16])

	for i := 0; i < 16; i++ {
		a := alphaTable[(alphaIndexes>>alphaShifts[i])&0x07]
		c := &p[(colorIndexes>>colorShifts[i])&0x03]
		flags |= alphaFlagsOf(a)

		j := ((i >> 2) * stride) + ((i & 3) * 4)
		dst[j+0] = c[0]
		dst[j+1] = c[1]
		dst[j+2] = c[2]
		dst[j+3] = a
	}
	return flags
}

var opaqueAlphas = [16]uint8{
	0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF,
}

// decodeColorRGB writes a DXT1 color block as 4×4 RGB pixels. dst starts at
// the block's top-left pixel and stride is in bytes.
func decodeColorRGB(dst []byte, stride int, block *[8]byte) {
	_ = dst[(3*stride)+11]

	p, _ := makePalette(readU16LE(block[0:2]), readU16LE(block[2:4]))
	indexes := readU32LE(block[4:8])

	for y := 0; y < 4; y++ {
		row := dst[y*stride : (y*stride)+12]
		for x := 0; x < 4; x++ {
			c := &p[indexes&0x03]
			row[(3*x)+0] = c[0]
			row[(3*x)+1] = c[1]
			row[(3*x)+2] = c[2]
			indexes >>= 2
		}
	}
}

// decodeColorRGBA writes a DXT1 color block as 4×4 RGBA pixels, taking each
// pixel's alpha from alphas. If punchThrough is true, pixels that select
// palette entry 3 in the three color mode have alpha 0 instead.
func decodeColorRGBA(dst []byte, stride int, block *[8]byte, alphas *[16]uint8, punchThrough bool) (flags AlphaFlags) {
	_ = dst[(3*stride)+15]

	p, special := makePalette(readU16LE(block[0:2]), readU16LE(block[2:4]))
	punchThrough = punchThrough && special
	indexes := readU32LE(block[4:8])

	for y := 0; y < 4; y++ {
		row := dst[y*stride : (y*stride)+16]
		for x := 0; x < 4; x++ {
			k := (4 * y) + x
			index := (indexes >> colorShifts[k]) & 0x03
			a := alphas[k]
			if punchThrough && (index == 3) {
				a = 0x00
			}
			flags |= alphaFlagsOf(a)

			c := &p[index]
			row[(4*x)+0] = c[0]
			row[(4*x)+1] = c[1]
			row[(4*x)+2] = c[2]
			row[(4*x)+3] = a
		}
	}
	return flags
}

func readU16LE(b []byte) uint16 {
	b = b[:2]
	return (uint16(b[0]) << 0) |
		(uint16(b[1]) << 8)
}

func readU32LE(b []byte) uint32 {
	b = b[:4]
	return (uint32(b[0]) << 0) |
		(uint32(b[1]) << 8) |
		(uint32(b[2]) << 16) |
		(uint32(b[3]) << 24)
}

func readU48LE(b []byte) uint64 {
	b = b[:6]
	return (uint64(b[0]) << 0) |
		(uint64(b[1]) << 8) |
		(uint64(b[2]) << 16) |
		(uint64(b[3]) << 24) |
		(uint64(b[4]) << 32) |
		(uint64(b[5]) << 40)
}

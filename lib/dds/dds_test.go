// Copyright 2025 The Dxt Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package dds

import (
	"bytes"
	"image"
	"image/color"
	"io"
	"testing"

	"github.com/nigeltao/dxt/internal/nie"
	"github.com/nigeltao/dxt/lib/dxt"
)

func putU32LE(b []byte, u uint32) {
	b = b[:4]
	b[0] = uint8(u >> 0)
	b[1] = uint8(u >> 8)
	b[2] = uint8(u >> 16)
	b[3] = uint8(u >> 24)
}

func makeDDS(fourCC string, pfFlags uint32, width uint32, height uint32, blocks []byte) []byte {
	buf := make([]byte, headerSize)
	copy(buf, Magic)
	putU32LE(buf[4:], headerSizeField)
	putU32LE(buf[8:], 0x00001007) // DDSD_CAPS | DDSD_HEIGHT | DDSD_WIDTH | DDSD_PIXELFORMAT.
	putU32LE(buf[12:], height)
	putU32LE(buf[16:], width)
	putU32LE(buf[76:], pixelFormatSize)
	putU32LE(buf[80:], pfFlags)
	copy(buf[84:88], fourCC)
	putU32LE(buf[108:], 0x00001000) // DDSCAPS_TEXTURE.
	return append(buf, blocks...)
}

// solidDXT1Block is a DXT1 block whose every pixel is c's expansion.
func solidDXT1Block(c uint16) []byte {
	return []byte{uint8(c >> 0), uint8(c >> 8), 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
}

// solidDXT5Block is a DXT5 block whose every pixel has color c's expansion
// and alpha a.
func solidDXT5Block(c uint16, a uint8) []byte {
	return append([]byte{a, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}, solidDXT1Block(c)...)
}

var quadrantColors = [4]color.NRGBA{
	{0xFF, 0x00, 0x00, 0xFF},
	{0x00, 0xFC, 0x00, 0xFF},
	{0x00, 0x00, 0xFF, 0xFF},
	{0xFF, 0xFC, 0xFF, 0xFF},
}

var quadrantDXT1Blocks = bytes.Join([][]byte{
	solidDXT1Block(0xF800),
	solidDXT1Block(0x07E0),
	solidDXT1Block(0x001F),
	solidDXT1Block(0xFFFF),
}, nil)

func makeQuadrantImage(width int, height int, alpha uint8) *image.NRGBA {
	m := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := quadrantColors[(2*(y/4))+(x/4)]
			c.A = alpha
			m.SetNRGBA(x, y, c)
		}
	}
	return m
}

func TestDecode(tt *testing.T) {
	testCases := []struct {
		name      string
		src       []byte
		want      image.Image
		wantFlags dxt.AlphaFlags
	}{{
		name:      "dxt1.6x5",
		src:       makeDDS("DXT1", pfFourCC, 6, 5, quadrantDXT1Blocks),
		want:      makeQuadrantImage(6, 5, 0xFF),
		wantFlags: 0,
	}, {
		name:      "dxt1a.8x8",
		src:       makeDDS("DXT1", pfFourCC|pfAlphaPixels, 8, 8, quadrantDXT1Blocks),
		want:      makeQuadrantImage(8, 8, 0xFF),
		wantFlags: 0,
	}, {
		name: "dxt3.5x7",
		src: makeDDS("DXT3", pfFourCC, 5, 7, bytes.Join([][]byte{
			bytes.Repeat([]byte{0x88}, 8), solidDXT1Block(0xF800),
			bytes.Repeat([]byte{0x88}, 8), solidDXT1Block(0x07E0),
			bytes.Repeat([]byte{0x88}, 8), solidDXT1Block(0x001F),
			bytes.Repeat([]byte{0x88}, 8), solidDXT1Block(0xFFFF),
		}, nil)),
		want:      makeQuadrantImage(5, 7, 0x88),
		wantFlags: dxt.AlphaFlagPartiallyTransparent,
	}, {
		name: "dxt5.8x3",
		src: makeDDS("DXT5", pfFourCC, 8, 3, bytes.Join([][]byte{
			solidDXT5Block(0xF800, 0x00),
			solidDXT5Block(0x07E0, 0x00),
		}, nil)),
		want:      makeQuadrantImage(8, 3, 0x00),
		wantFlags: dxt.AlphaFlagFullyTransparent,
	}}

	for _, tc := range testCases {
		srcImage, flags, err := DecodeWithOptions(bytes.NewReader(tc.src), nil)
		if err != nil {
			tt.Errorf("tc=%q: DecodeWithOptions: %v", tc.name, err)
			continue
		}
		if flags != tc.wantFlags {
			tt.Errorf("tc=%q: flags: got %02b, want %02b", tc.name, flags, tc.wantFlags)
		}
		if got, want := srcImage.Bounds(), tc.want.Bounds(); got != want {
			tt.Errorf("tc=%q: bounds: got %v, want %v", tc.name, got, want)
			continue
		}

		got, err := nie.EncodeBN8(srcImage)
		if err != nil {
			tt.Errorf("tc=%q: nie.EncodeBN8(got): %v", tc.name, err)
			continue
		}
		want, err := nie.EncodeBN8(tc.want)
		if err != nil {
			tt.Errorf("tc=%q: nie.EncodeBN8(want): %v", tc.name, err)
			continue
		}

		if bytes.Equal(got, want) {
			continue
		} else if len(got) != len(want) {
			tt.Errorf("tc=%q: lengths: got %d, want %d", tc.name, len(got), len(want))
			continue
		}

		byteOffset := 0
		for byteOffset = range got {
			if got[byteOffset] != want[byteOffset] {
				break
			}
		}

		n := byteOffset &^ 7
		tt.Errorf("tc=%q: NIE output differs at byte offset 0x%04X (%d), got vs want:\n% 02X\n% 02X",
			tc.name, byteOffset, byteOffset, got[n:n+8], want[n:n+8])
	}
}

func TestDecodeImageTypes(tt *testing.T) {
	src := makeDDS("DXT1", pfFourCC, 8, 8, quadrantDXT1Blocks)

	m, err := Decode(bytes.NewReader(src))
	if err != nil {
		tt.Fatalf("Decode: %v", err)
	}
	if _, ok := m.(*dxt.RGB); !ok {
		tt.Errorf("DXT1: got %T, want *dxt.RGB", m)
	}

	m, _, err = DecodeWithOptions(bytes.NewReader(src), &DecodeOptions{DXT1Transparent: true})
	if err != nil {
		tt.Fatalf("DecodeWithOptions: %v", err)
	}
	if _, ok := m.(*image.NRGBA); !ok {
		tt.Errorf("DXT1Transparent: got %T, want *image.NRGBA", m)
	}
}

func TestDecodeTransparentDXT1(tt *testing.T) {
	// c0 == c1 and every index is 3: transparent black.
	block := []byte{0x00, 0x00, 0x00, 0x00, 0xFF, 0xFF, 0xFF, 0xFF}
	src := makeDDS("DXT1", pfFourCC|pfAlphaPixels, 4, 4, block)

	m, flags, err := DecodeWithOptions(bytes.NewReader(src), nil)
	if err != nil {
		tt.Fatalf("DecodeWithOptions: %v", err)
	}
	if flags != dxt.AlphaFlagFullyTransparent {
		tt.Errorf("flags: got %02b, want %02b", flags, dxt.AlphaFlagFullyTransparent)
	}
	if got, want := m.(*image.NRGBA).NRGBAAt(2, 2), (color.NRGBA{}); got != want {
		tt.Errorf("pixel: got %v, want %v", got, want)
	}
}

func TestDecodeConfig(tt *testing.T) {
	src := makeDDS("DXT5", pfFourCC, 30, 17, nil)
	config, err := DecodeConfig(bytes.NewReader(src))
	if err != nil {
		tt.Fatalf("DecodeConfig: %v", err)
	}
	if config.Width != 30 || config.Height != 17 {
		tt.Errorf("dimensions: got %dx%d, want 30x17", config.Width, config.Height)
	}
	if config.ColorModel != color.NRGBAModel {
		tt.Errorf("ColorModel: got %v, want NRGBAModel", config.ColorModel)
	}
}

func TestRegisterFormat(tt *testing.T) {
	src := makeDDS("DXT1", pfFourCC, 8, 8, quadrantDXT1Blocks)
	_, name, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		tt.Fatalf("image.Decode: %v", err)
	}
	if name != "dds" {
		tt.Errorf("format name: got %q, want %q", name, "dds")
	}
}

func TestDecodeErrors(tt *testing.T) {
	badMagic := makeDDS("DXT1", pfFourCC, 4, 4, quadrantDXT1Blocks[:8])
	badMagic[3] = 'X'
	badSize := makeDDS("DXT1", pfFourCC, 4, 4, quadrantDXT1Blocks[:8])
	badSize[4] = 0x7B

	testCases := []struct {
		name string
		src  []byte
		want error
	}{
		{"empty", nil, io.EOF},
		{"truncated header", makeDDS("DXT1", pfFourCC, 4, 4, nil)[:100], io.ErrUnexpectedEOF},
		{"bad magic", badMagic, ErrNotADDSFile},
		{"bad header size", badSize, ErrNotADDSFile},
		{"no fourcc", makeDDS("DXT1", pfAlphaPixels, 4, 4, nil), ErrUnsupportedFormat},
		{"dx10", makeDDS("DX10", pfFourCC, 4, 4, nil), ErrUnsupportedFormat},
		{"ati2", makeDDS("ATI2", pfFourCC, 4, 4, nil), ErrUnsupportedFormat},
		{"too wide", makeDDS("DXT5", pfFourCC, 65536, 4, nil), ErrImageIsTooLarge},
		{"truncated blocks", makeDDS("DXT1", pfFourCC, 8, 8, quadrantDXT1Blocks[:20]), io.ErrUnexpectedEOF},
	}

	for _, tc := range testCases {
		if _, err := Decode(bytes.NewReader(tc.src)); err != tc.want {
			tt.Errorf("tc=%q: got %v, want %v", tc.name, err, tc.want)
		}
	}
}

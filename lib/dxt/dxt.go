// Copyright 2025 The Dxt Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package dxt implements decoding of the DXT1, DXT3 and DXT5 block
// compressed texture formats, also known as S3TC or BC1, BC2 and BC3.
//
// Each format splits an image into 4×4 pixel blocks, each block compressed
// independently to a fixed number of bytes. The DecodeDXT*Block functions
// decode a single block into a caller-owned pixel buffer. They are pure
// functions of their inputs (other than writing the block's 4×4 footprint)
// and so can be called concurrently for distinct blocks of the same image.
//
// DXT is often wrapped in .dds (DirectDraw Surface) container files. See the
// sibling dds package.
package dxt

import (
	"errors"
	"image"
	"image/color"
)

var (
	ErrBadArgument     = errors.New("dxt: bad argument")
	ErrBadImageType    = errors.New("dxt: bad image type")
	ErrImageIsTooLarge = errors.New("dxt: image is too large")
)

// SubsettableImage is an image.Image that also has a SubImage method, like all
// of the Go standard library's image types.
type SubsettableImage interface {
	image.Image
	SubImage(r image.Rectangle) image.Image
}

// AlphaModel is a Format's transparency model.
type AlphaModel uint8

const (
	AlphaModelOpaque = AlphaModel(0)
	AlphaModel1Bit   = AlphaModel(1)
	AlphaModel4Bit   = AlphaModel(2)
	AlphaModel8Bit   = AlphaModel(3)
)

// Layout is the in-memory arrangement of a decoded pixel.
type Layout uint8

const (
	// LayoutRGB is 3 bytes per pixel: R, G, B.
	LayoutRGB = Layout(0)
	// LayoutRGBA is 4 bytes per pixel: R, G, B, A. Alpha is not
	// premultiplied.
	LayoutRGBA = Layout(1)
)

// BytesPerPixel returns 3 or 4.
func (l Layout) BytesPerPixel() int {
	if l == LayoutRGBA {
		return 4
	}
	return 3
}

// AlphaFlags summarizes the alpha values of decoded pixels. Flags from
// separate blocks can be combined with bitwise OR.
type AlphaFlags uint8

const (
	// AlphaFlagFullyTransparent is set when at least one pixel has alpha 0.
	AlphaFlagFullyTransparent = AlphaFlags(1 << 0)
	// AlphaFlagPartiallyTransparent is set when at least one pixel has an
	// alpha strictly between 0 and 255.
	AlphaFlagPartiallyTransparent = AlphaFlags(1 << 1)
)

func (a AlphaFlags) HasFullyTransparent() bool {
	return (a & AlphaFlagFullyTransparent) != 0
}

func (a AlphaFlags) HasPartiallyTransparent() bool {
	return (a & AlphaFlagPartiallyTransparent) != 0
}

// alphaFlagsOf returns the AlphaFlags for a single alpha value.
func alphaFlagsOf(alpha uint8) AlphaFlags {
	if alpha == 0x00 {
		return AlphaFlagFullyTransparent
	} else if alpha != 0xFF {
		return AlphaFlagPartiallyTransparent
	}
	return 0
}

// Format gives the DXT variant.
//
// FormatDXT1RGB and FormatDXT1RGBA share the same block encoding. They
// differ in whether the "three color" mode's fourth palette entry decodes as
// opaque black (RGB) or as transparent black (RGBA).
type Format int8

const (
	FormatInvalid = Format(-1)

	FormatDXT1RGB  = Format(0x01)
	FormatDXT1RGBA = Format(0x02)
	FormatDXT3     = Format(0x03)
	FormatDXT5     = Format(0x05)
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatDXT1RGB:
		return "DXT1-RGB"
	case FormatDXT1RGBA:
		return "DXT1-RGBA"
	case FormatDXT3:
		return "DXT3"
	case FormatDXT5:
		return "DXT5"
	}
	return "invalid"
}

// AlphaModel returns the Format's transparency model.
func (f Format) AlphaModel() AlphaModel {
	switch f {
	case FormatDXT1RGB:
		return AlphaModelOpaque
	case FormatDXT1RGBA:
		return AlphaModel1Bit
	case FormatDXT3:
		return AlphaModel4Bit
	case FormatDXT5:
		return AlphaModel8Bit
	}

	return 0
}

// BytesPerBlock returns the Format-dependent number of bytes used to encode
// each 4×4 pixel block, or 0 for an invalid Format.
func (f Format) BytesPerBlock() int {
	switch f {
	case FormatDXT1RGB,
		FormatDXT1RGBA:
		return 8

	case FormatDXT3,
		FormatDXT5:
		return 16
	}

	return 0
}

// Layout returns the pixel Layout that the Format's decoder writes.
func (f Format) Layout() Layout {
	if f == FormatDXT1RGB {
		return LayoutRGB
	}
	return LayoutRGBA
}

// ColorModel returns the Go standard library's color model that best matches
// the Format.
func (f Format) ColorModel() color.Model {
	switch f {
	case FormatDXT1RGB:
		return color.RGBAModel

	case FormatDXT1RGBA,
		FormatDXT3,
		FormatDXT5:
		return color.NRGBAModel
	}

	return nil
}

// NewImage returns an image.Image that's suitable for the Format: an *RGB for
// FormatDXT1RGB and an *image.NRGBA otherwise.
//
// The requested width and height will be rounded up to a multiple of 4.
//
// It returns an error if the width or height is negative or above 65536.
func (f Format) NewImage(width int, height int) (SubsettableImage, error) {
	if (width < 0) || (width >= 65536) ||
		(height < 0) || (height >= 65536) {
		return nil, ErrBadArgument
	}
	r := image.Rect(0, 0, (width+3)&^3, (height+3)&^3)

	switch f {
	case FormatDXT1RGB:
		return NewRGB(r), nil

	case FormatDXT1RGBA,
		FormatDXT3,
		FormatDXT5:
		return image.NewNRGBA(r), nil
	}

	return nil, ErrBadArgument
}

// FourCC returns the four character code identifying the Format in DDS
// files, or the empty string for an invalid Format.
func (f Format) FourCC() string {
	switch f {
	case FormatDXT1RGB,
		FormatDXT1RGBA:
		return "DXT1"
	case FormatDXT3:
		return "DXT3"
	case FormatDXT5:
		return "DXT5"
	}
	return ""
}

// OpenGLInternalFormat returns the OpenGL internalFormat enum value for f,
// suitable for passing to the glCompressedTexImage2D function.
func (f Format) OpenGLInternalFormat() uint32 {
	switch f {
	case FormatDXT1RGB:
		return 0x83F0 // GL_COMPRESSED_RGB_S3TC_DXT1_EXT
	case FormatDXT1RGBA:
		return 0x83F1 // GL_COMPRESSED_RGBA_S3TC_DXT1_EXT
	case FormatDXT3:
		return 0x83F2 // GL_COMPRESSED_RGBA_S3TC_DXT3_EXT
	case FormatDXT5:
		return 0x83F3 // GL_COMPRESSED_RGBA_S3TC_DXT5_EXT
	}

	return 0
}

// DecodeBlock decodes one block of the Format into dst, dispatching to the
// matching DecodeDXT*Block function. dst's layout must match f.Layout().
//
// It panics if block is shorter than f.BytesPerBlock() or f is invalid.
func (f Format) DecodeBlock(dst []byte, width int, x int, y int, block []byte) AlphaFlags {
	switch f {
	case FormatDXT1RGB:
		return DecodeDXT1Block(dst, width, x, y, (*[8]byte)(block), false)
	case FormatDXT1RGBA:
		return DecodeDXT1Block(dst, width, x, y, (*[8]byte)(block), true)
	case FormatDXT3:
		return DecodeDXT3Block(dst, width, x, y, (*[16]byte)(block))
	case FormatDXT5:
		return DecodeDXT5Block(dst, width, x, y, (*[16]byte)(block))
	}
	panic("dxt: invalid format")
}

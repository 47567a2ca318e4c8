// Copyright 2025 The Dxt Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package nie implements the NIE (Naive) image file format.
//
// It is an incomplete implementation (and hence an internal package), only
// providing what's needed by the github.com/nigeltao/dxt module.
//
// NIE is specified at
// https://github.com/google/wuffs/blob/main/doc/spec/nie-spec.md
package nie

import (
	"errors"
	"image"
	"image/color"

	"github.com/nigeltao/dxt/lib/dxt"
)

var (
	ErrUnsupportedImageType = errors.New("nie: unsupported image type")
)

// EncodeBN8 encodes m as a NIE file in BGRA order, non-premultiplied alpha, 8
// bytes per pixel (16 bits per channel).
func EncodeBN8(m image.Image) (ret []byte, retErr error) {
	if m == nil {
		return nil, ErrUnsupportedImageType
	}
	b := m.Bounds()
	ret = make([]byte, 0, 16+(8*b.Dx()*b.Dy()))
	ret = append(ret, 0x6E, 0xC3, 0xAF, 0x45, 0xFF, 'b', 'n', '8')
	ret = appendU32LE(ret, uint32(b.Dx()))
	ret = appendU32LE(ret, uint32(b.Dy()))

	switch m := m.(type) {
	case *dxt.RGB:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				at := m.RGBAAt(x, y)
				ret = appendBN8(ret, at.R, at.G, at.B, 0xFF)
			}
		}
		return ret, nil

	case *image.NRGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				at := m.NRGBAAt(x, y)
				ret = appendBN8(ret, at.R, at.G, at.B, at.A)
			}
		}
		return ret, nil

	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				at := m.RGBAAt(x, y)
				if (at.A != 0x00) && (at.A != 0xFF) {
					return nil, ErrUnsupportedImageType
				}
				ret = appendBN8(ret, at.R, at.G, at.B, at.A)
			}
		}
		return ret, nil
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			at := color.NRGBA64Model.Convert(m.At(x, y)).(color.NRGBA64)
			ret = append(ret,
				uint8(at.B>>0), uint8(at.B>>8),
				uint8(at.G>>0), uint8(at.G>>8),
				uint8(at.R>>0), uint8(at.R>>8),
				uint8(at.A>>0), uint8(at.A>>8),
			)
		}
	}
	return ret, nil
}

// appendBN8 appends one pixel, widening each 8-bit channel to 16 bits.
func appendBN8(b []byte, r uint8, g uint8, bl uint8, a uint8) []byte {
	return append(b,
		bl, bl,
		g, g,
		r, r,
		a, a,
	)
}

func appendU32LE(b []byte, u uint32) []byte {
	return append(b,
		uint8(u>>0),
		uint8(u>>8),
		uint8(u>>16),
		uint8(u>>24),
	)
}

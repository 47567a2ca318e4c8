// Copyright 2025 The Dxt Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// Package dds implements reading DXT compressed textures from DDS
// (DirectDraw Surface) container files.
//
// Only the first (largest) mipmap level of a 2D texture is decoded. DDS files
// using the DX10 extended header, or pixel formats other than DXT1, DXT3 and
// DXT5, are rejected with ErrUnsupportedFormat.
//
// DDS is specified at
// https://learn.microsoft.com/en-us/windows/win32/direct3ddds/dds-header
package dds

import (
	"errors"
	"image"
	"io"

	"github.com/nigeltao/dxt/lib/dxt"
)

// Magic is the byte string prefix of every DDS image file.
const Magic = "DDS "

func init() {
	image.RegisterFormat("dds", Magic, Decode, DecodeConfig)
}

var (
	ErrImageIsTooLarge   = errors.New("dds: image is too large")
	ErrNotADDSFile       = errors.New("dds: not a DDS file")
	ErrUnsupportedFormat = errors.New("dds: unsupported format")
)

const (
	headerSize      = 128
	headerSizeField = 124
	pixelFormatSize = 32

	pfAlphaPixels = 0x00000001
	pfFourCC      = 0x00000004
)

// DecodeOptions are optional arguments to DecodeWithOptions. The zero value is
// valid and means to use the default configuration.
type DecodeOptions struct {
	// DXT1Transparent is whether to decode DXT1 textures as
	// dxt.FormatDXT1RGBA (with 1-bit alpha) even when the file's pixel format
	// doesn't have the DDPF_ALPHAPIXELS flag.
	DXT1Transparent bool
}

func decodeConfig(r io.Reader, options *DecodeOptions) (retFormat dxt.Format, retConfig image.Config, retErr error) {
	buf := [headerSize]byte{}
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, image.Config{}, err
	} else if (string(buf[:4]) != Magic) ||
		(readU32LE(buf[4:]) != headerSizeField) ||
		(readU32LE(buf[76:]) != pixelFormatSize) {
		return 0, image.Config{}, ErrNotADDSFile
	}

	pfFlags := readU32LE(buf[80:])
	if (pfFlags & pfFourCC) == 0 {
		return 0, image.Config{}, ErrUnsupportedFormat
	}
	switch string(buf[84:88]) {
	case "DXT1":
		retFormat = dxt.FormatDXT1RGB
		if ((pfFlags & pfAlphaPixels) != 0) ||
			((options != nil) && options.DXT1Transparent) {
			retFormat = dxt.FormatDXT1RGBA
		}
	case "DXT3":
		retFormat = dxt.FormatDXT3
	case "DXT5":
		retFormat = dxt.FormatDXT5
	default:
		return 0, image.Config{}, ErrUnsupportedFormat
	}

	height := readU32LE(buf[12:])
	width := readU32LE(buf[16:])
	if (width >= 65536) || (height >= 65536) {
		return 0, image.Config{}, ErrImageIsTooLarge
	}

	return retFormat, image.Config{
		ColorModel: retFormat.ColorModel(),
		Width:      int(width),
		Height:     int(height),
	}, nil
}

// DecodeConfig reads a DDS image configuration from r.
func DecodeConfig(r io.Reader) (image.Config, error) {
	_, config, err := decodeConfig(r, nil)
	return config, err
}

// Decode reads a DDS image from r.
func Decode(r io.Reader) (image.Image, error) {
	m, _, err := DecodeWithOptions(r, nil)
	return m, err
}

// DecodeWithOptions reads a DDS image from r. It also returns the AlphaFlags
// summarizing the decoded pixels' transparency.
//
// options may be nil, which means to use the default configuration.
func DecodeWithOptions(r io.Reader, options *DecodeOptions) (image.Image, dxt.AlphaFlags, error) {
	format, config, err := decodeConfig(r, options)
	if err != nil {
		return nil, 0, err
	}
	m, err := format.NewImage(config.Width, config.Height)
	if err != nil {
		return nil, 0, err
	}
	b := m.Bounds()
	flags, err := format.Decode(m, r, b.Dx()/4, b.Dy()/4)
	if err != nil {
		return nil, 0, err
	}
	return m.SubImage(image.Rect(0, 0, config.Width, config.Height)), flags, nil
}

func readU32LE(b []byte) uint32 {
	b = b[:4]
	return (uint32(b[0]) << 0) |
		(uint32(b[1]) << 8) |
		(uint32(b[2]) << 16) |
		(uint32(b[3]) << 24)
}

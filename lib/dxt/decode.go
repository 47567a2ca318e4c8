// Copyright 2025 The Dxt Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package dxt

import (
	"image"
	"io"
)

// maxBlocksPerSide bounds blocksWide and blocksHigh, matching the 65536 pixel
// limit of NewImage.
const maxBlocksPerSide = 65536 / 4

const decoderBufferSize = 4096

// Decode reads blocksWide × blocksHigh blocks of the Format from r, in row
// major order, and decodes them into m. Pixel coordinates are relative to the
// top-left of m's bounds.
//
// m must be an *RGB when f is FormatDXT1RGB and an *image.NRGBA otherwise,
// such as those returned by f.NewImage. Its bounds must be at least 4 *
// blocksWide pixels wide and 4 * blocksHigh pixels high.
//
// It returns the bitwise OR of every block's AlphaFlags. On error, some of m's
// pixels may have been written.
func (f Format) Decode(m image.Image, r io.Reader, blocksWide int, blocksHigh int) (flags AlphaFlags, retErr error) {
	bpb := f.BytesPerBlock()
	if (bpb == 0) || (m == nil) || (r == nil) ||
		(blocksWide < 0) || (blocksHigh < 0) {
		return 0, ErrBadArgument
	} else if (blocksWide > maxBlocksPerSide) || (blocksHigh > maxBlocksPerSide) {
		return 0, ErrImageIsTooLarge
	}

	pix, stride := []byte(nil), 0
	switch m := m.(type) {
	case *RGB:
		if f.Layout() != LayoutRGB {
			return 0, ErrBadImageType
		}
		pix, stride = m.Pix, m.Stride
	case *image.NRGBA:
		if f.Layout() != LayoutRGBA {
			return 0, ErrBadImageType
		}
		pix, stride = m.Pix, m.Stride
	default:
		return 0, ErrBadImageType
	}

	bpp := f.Layout().BytesPerPixel()
	if (stride % bpp) != 0 {
		return 0, ErrBadImageType
	}
	b := m.Bounds()
	if (b.Dx() < (4 * blocksWide)) || (b.Dy() < (4 * blocksHigh)) {
		return 0, ErrBadArgument
	}
	width := stride / bpp

	buf := make([]byte, decoderBufferSize)
	numBlocks := blocksWide * blocksHigh
	for i := 0; i < numBlocks; {
		n := min(numBlocks-i, decoderBufferSize/bpb)
		chunk := buf[:n*bpb]
		if _, err := io.ReadFull(r, chunk); err != nil {
			return flags, err
		}
		for ; n > 0; n-- {
			x := 4 * (i % blocksWide)
			y := 4 * (i / blocksWide)
			flags |= f.DecodeBlock(pix, width, x, y, chunk)
			chunk = chunk[bpb:]
			i++
		}
	}
	return flags, nil
}

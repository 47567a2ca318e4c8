// Copyright 2025 The Dxt Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

// ----------------

// dxtunpack decodes DXT (S3TC) compressed textures held in DDS files.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/nigeltao/dxt/internal/nie"
	"github.com/nigeltao/dxt/lib/dds"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

var (
	decodeFlag      = flag.Bool("decode", false, "whether to decode the input")
	outputFlag      = flag.String("output", "", "output format")
	statsFlag       = flag.Bool("stats", false, "whether to print alpha statistics to stderr")
	transparentFlag = flag.Bool("transparent", false, "whether to decode DXT1 with 1-bit alpha")
)

const usageStr = `dxtunpack decodes the DXT1, DXT3 and DXT5 compressed texture formats.

Usage:

    dxtunpack -decode [path]

The path to the input DDS file is optional. If omitted, stdin is read. The
input may be wrapped in zstd compression, which is detected automatically.

You can also pass these flags (before the path):

    -output=bmp
    -output=nie-bn8
    -output=png (this is the default)
    -output=tiff
    -stats
    -transparent

The output image is written to stdout.

-stats prints whether the texture has fully or partially transparent pixels.
-transparent decodes DXT1 textures with 1-bit alpha even when the DDS header
doesn't say so.
`

var ErrBadOutputFlag = errors.New("main: bad -output flag")

// zstdMagic is the little-endian encoding of 0xFD2FB528.
const zstdMagic = "\x28\xB5\x2F\xFD"

func main() {
	if err := main1(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func main1() error {
	flag.Usage = func() { os.Stderr.WriteString(usageStr) }
	flag.Parse()

	inFile := os.Stdin
	switch flag.NArg() {
	case 0:
		// No-op.
	case 1:
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		inFile = f
	default:
		return errors.New("too many filenames; the maximum is one")
	}

	if !*decodeFlag {
		return errors.New("must specify -decode or -help")
	}
	return decode(inFile)
}

func decode(inFile *os.File) error {
	switch *outputFlag {
	case "", "bmp", "nie-bn8", "png", "tiff":
		// No-op.
	default:
		return ErrBadOutputFlag
	}

	r, closer, err := unwrap(bufio.NewReader(inFile))
	if err != nil {
		return err
	}
	defer closer()

	src, flags, err := dds.DecodeWithOptions(r, &dds.DecodeOptions{
		DXT1Transparent: *transparentFlag,
	})
	if err != nil {
		return err
	}
	if *statsFlag {
		fmt.Fprintf(os.Stderr, "fully-transparent=%t partially-transparent=%t\n",
			flags.HasFullyTransparent(), flags.HasPartiallyTransparent())
	}
	return encode(os.Stdout, src)
}

// unwrap returns a reader for br's contents, transparently decompressing them
// if they start with the zstd magic number.
func unwrap(br *bufio.Reader) (io.Reader, func(), error) {
	if magic, err := br.Peek(len(zstdMagic)); (err != nil) || (string(magic) != zstdMagic) {
		return br, func() {}, nil
	}
	dec, err := zstd.NewReader(br,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("zstd decode: %w", err)
	}
	return dec, dec.Close, nil
}

func encode(w io.Writer, src image.Image) error {
	switch *outputFlag {
	case "bmp":
		return bmp.Encode(w, src)
	case "nie-bn8":
		dst, err := nie.EncodeBN8(src)
		if err != nil {
			return err
		}
		_, err = w.Write(dst)
		return err
	case "tiff":
		return tiff.Encode(w, src, &tiff.Options{Compression: tiff.Deflate})
	}
	return png.Encode(w, src)
}

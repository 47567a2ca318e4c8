// Copyright 2025 The Dxt Authors.
//
// Licensed under the Apache License, Version 2.0 <LICENSE-APACHE or
// https://www.apache.org/licenses/LICENSE-2.0>. This file may not be copied,
// modified, or distributed except according to those terms.
//
// SPDX-License-Identifier: Apache-2.0

package dxt

// expand5 maps a 5-bit channel value to 8 bits. The values are scaled, not
// bit-replicated, and must not be changed: decoded output is compared
// byte-for-byte against other decoders.
var expand5 = [32]uint8{
	0x00, 0x08, 0x10, 0x18, 0x20, 0x29, 0x31, 0x39,
	0x41, 0x4A, 0x52, 0x5A, 0x62, 0x6A, 0x73, 0x7B,
	0x83, 0x8B, 0x94, 0x9C, 0xA4, 0xAC, 0xB4, 0xBD,
	0xC5, 0xCD, 0xD5, 0xDE, 0xE6, 0xEE, 0xF6, 0xFF,
}

// expand6 maps a 6-bit channel value to 8 bits. Note that 0x3F maps to 0xFC,
// not 0xFF.
var expand6 = [64]uint8{
	0x00, 0x04, 0x08, 0x0C, 0x10, 0x14, 0x18, 0x1C,
	0x20, 0x24, 0x28, 0x2C, 0x30, 0x34, 0x38, 0x3C,
	0x40, 0x44, 0x48, 0x4C, 0x50, 0x54, 0x58, 0x5C,
	0x60, 0x64, 0x68, 0x6C, 0x70, 0x74, 0x78, 0x7C,
	0x80, 0x84, 0x88, 0x8C, 0x90, 0x94, 0x98, 0x9C,
	0xA0, 0xA4, 0xA8, 0xAC, 0xB0, 0xB4, 0xB8, 0xBC,
	0xC0, 0xC4, 0xC8, 0xCC, 0xD0, 0xD4, 0xD8, 0xDC,
	0xE0, 0xE4, 0xE8, 0xEC, 0xF0, 0xF4, 0xF8, 0xFC,
}

// alphaShifts and colorShifts give, for each pixel i = (4 * y) + x of a
// block, the bit offset of that pixel's 3-bit alpha index (within the 48-bit
// alpha index field) and 2-bit color index (within the 32-bit color index
// field).
var alphaShifts = [16]uint8{
	0, 3, 6, 9,
	12, 15, 18, 21,
	24, 27, 30, 33,
	36, 39, 42, 45,
}

var colorShifts = [16]uint8{
	0, 2, 4, 6,
	8, 10, 12, 14,
	16, 18, 20, 22,
	24, 26, 28, 30,
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

// Varint64MaximumBytes - longest encoding produced by AppendVarint64
const Varint64MaximumBytes = 9

const (
	varintContinue = 0x80
	varintMask     = 0x7f
)

// ToVarint64 - encode value as a fresh Varint64 slice
func ToVarint64(value uint64) []byte {
	return AppendVarint64(make([]byte, 0, Varint64MaximumBytes), value)
}

// AppendVarint64 - append the Varint64 form of value to buffer
//
// little endian groups of seven bits with a continuation flag; the
// ninth byte, when reached, holds the remaining eight bits unflagged
func AppendVarint64(buffer []byte, value uint64) []byte {
	for n := 1; n < Varint64MaximumBytes; n += 1 {
		if value <= varintMask {
			return append(buffer, byte(value))
		}
		buffer = append(buffer, byte(value&varintMask)|varintContinue)
		value >>= 7
	}
	return append(buffer, byte(value))
}

// FromVarint64 - decode a Varint64 from the start of buffer
//
// returns the value and the number of bytes consumed,
// or 0, 0 when buffer ends before the encoding does
func FromVarint64(buffer []byte) (uint64, int) {
	value := uint64(0)
	for i, b := range buffer {
		if Varint64MaximumBytes-1 == i {
			return value | uint64(b)<<(7*uint(i)), i + 1
		}
		value |= uint64(b&varintMask) << (7 * uint(i))
		if 0 == b&varintContinue {
			return value, i + 1
		}
	}
	return 0, 0
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastorage

import (
	"encoding/hex"

	"github.com/canyon-network/canyond/fault"
)

// Bytes - binary data carried as 0x prefixed hex text
type Bytes []byte

// MarshalText - convert to 0x prefixed hex
func (b Bytes) MarshalText() ([]byte, error) {
	buffer := make([]byte, 2+hex.EncodedLen(len(b)))
	buffer[0] = '0'
	buffer[1] = 'x'
	hex.Encode(buffer[2:], b)
	return buffer, nil
}

// UnmarshalText - convert from 0x prefixed hex
func (b *Bytes) UnmarshalText(s []byte) error {
	if len(s) < 2 || '0' != s[0] || ('x' != s[1] && 'X' != s[1]) {
		return fault.InvalidHexBytes
	}
	buffer := make([]byte, hex.DecodedLen(len(s)-2))
	if _, err := hex.Decode(buffer, s[2:]); nil != err {
		return fault.InvalidHexBytes
	}
	*b = buffer
	return nil
}

// String - 0x prefixed hex
func (b Bytes) String() string {
	s, _ := b.MarshalText()
	return string(s)
}

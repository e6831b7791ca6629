// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package merkle

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"

	"github.com/canyon-network/canyond/fault"
)

// number of bytes in the digest
const DigestLength = blake2b.Size256

// type for a digest
// stored and printed in natural byte order
// represented as hex text for JSON encoding
// to convert to bytes just use d[:]
type Digest [DigestLength]byte

// create a digest from a byte slice
func NewDigest(record []byte) Digest {
	return blake2b.Sum256(record)
}

// create a digest of several byte slices concatenated
func newDigestOf(parts ...[]byte) Digest {
	h, _ := blake2b.New256(nil) // only fails for an oversized key
	for _, p := range parts {
		h.Write(p)
	}
	var d Digest
	h.Sum(d[:0])
	return d
}

// convert a binary digest to hex string for use by the fmt package (for %s)
func (digest Digest) String() string {
	return hex.EncodeToString(digest[:])
}

// convert a binary digest to hex string for use by the fmt package (for %#v)
func (digest Digest) GoString() string {
	return "<BLAKE2b-256:" + hex.EncodeToString(digest[:]) + ">"
}

// IsZero - true for the all-zero digest
func (digest Digest) IsZero() bool {
	return digest == Digest{}
}

// convert a hex representation to a digest for use by the format package scan routines
func (digest *Digest) Scan(state fmt.ScanState, verb rune) error {
	token, err := state.Token(true, func(c rune) bool {
		if c >= '0' && c <= '9' {
			return true
		}
		if c >= 'A' && c <= 'F' {
			return true
		}
		if c >= 'a' && c <= 'f' {
			return true
		}
		return false
	})
	if nil != err {
		return err
	}
	return digest.UnmarshalText(token)
}

// convert digest to hex text
func (digest Digest) MarshalText() ([]byte, error) {
	size := hex.EncodedLen(len(digest))
	buffer := make([]byte, size)
	hex.Encode(buffer, digest[:])
	return buffer, nil
}

// convert hex text into a digest, an optional 0x prefix is accepted
func (digest *Digest) UnmarshalText(s []byte) error {
	if len(s) > 2 && '0' == s[0] && ('x' == s[1] || 'X' == s[1]) {
		s = s[2:]
	}
	if DigestLength != hex.DecodedLen(len(s)) {
		return fault.NotAChunkRoot
	}
	var buffer Digest
	if _, err := hex.Decode(buffer[:], s); nil != err {
		return fault.NotAChunkRoot
	}
	*digest = buffer
	return nil
}

// convert and validate a binary byte slice to a digest
func DigestFromBytes(digest *Digest, buffer []byte) error {
	if DigestLength != len(buffer) {
		return fault.NotAChunkRoot
	}
	copy(digest[:], buffer)
	return nil
}

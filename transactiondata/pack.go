// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactiondata

import (
	"github.com/canyon-network/canyond/constants"
	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/merkle"
	"github.com/canyon-network/canyond/util"
)

// Packed - binary form of a DataInfo as stored in chain state
//
//   varint64(size) ++ chunk root
type Packed []byte

// Pack - convert a DataInfo to its binary form
func (info DataInfo) Pack() Packed {
	buffer := util.ToVarint64(info.Size)
	return append(buffer, info.ChunkRoot[:]...)
}

// Unpack - convert the binary form back to a DataInfo
//
// the record must be consumed exactly
func (record Packed) Unpack() (DataInfo, error) {
	size, n := util.FromVarint64(record)
	if 0 == n {
		return DataInfo{}, fault.TruncatedRecord
	}
	if size >= constants.MaximumDataPayload {
		return DataInfo{}, fault.OversizedPayload
	}

	rest := record[n:]
	if len(rest) < merkle.DigestLength {
		return DataInfo{}, fault.TruncatedRecord
	}
	if len(rest) > merkle.DigestLength {
		return DataInfo{}, fault.InvalidCount
	}

	info := DataInfo{
		Size: size,
	}
	err := merkle.DigestFromBytes(&info.ChunkRoot, rest)
	if nil != err {
		return DataInfo{}, err
	}
	return info, nil
}

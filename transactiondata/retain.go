// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactiondata

import (
	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/permastorage"
	"github.com/canyon-network/canyond/util"
)

var payloadKeyPrefix = []byte("data:")

// PayloadKey - perma storage key for the payload of a commitment
//
//   "data:" ++ chunk root ++ varint64(size)
func PayloadKey(info DataInfo) []byte {
	key := make([]byte, 0, len(payloadKeyPrefix)+len(info.ChunkRoot)+util.Varint64MaximumBytes)
	key = append(key, payloadKeyPrefix...)
	key = append(key, info.ChunkRoot[:]...)
	return util.AppendVarint64(key, info.Size)
}

// Retain - write a verified payload to perma storage
func Retain(store permastorage.PermaStorage, data *TransactionData) error {
	if nil == data.Payload {
		return fault.MissingPayload
	}
	if err := Check(data); nil != err {
		return err
	}
	return store.Set(PayloadKey(data.Info), data.Payload.data)
}

// Load - read a payload back from perma storage and check it still
// matches its commitment
func Load(store permastorage.PermaStorage, info DataInfo) (*TransactionData, error) {
	value, found, err := store.Get(PayloadKey(info))
	if nil != err {
		return nil, err
	}
	if !found {
		return nil, fault.PayloadNotFound
	}
	data := &TransactionData{
		Payload: &DataPayload{data: value},
		Info:    info,
	}
	if err := Check(data); nil != err {
		return nil, err
	}
	return data, nil
}

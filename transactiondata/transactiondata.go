// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package transactiondata

import (
	"github.com/canyon-network/canyond/constants"
	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/merkle"
)

// DataInfo - the commitment to a payload
type DataInfo struct {
	Size      uint64        `json:"size"`
	ChunkRoot merkle.Digest `json:"chunkRoot"`
}

// DataPayload - raw payload bytes, always shorter than MaximumDataPayload
type DataPayload struct {
	data []byte
}

// TransactionData - a commitment with the payload when it is known
type TransactionData struct {
	Payload *DataPayload
	Info    DataInfo
}

// Bytes - the raw payload
func (p *DataPayload) Bytes() []byte {
	return p.data
}

// Len - payload length in bytes
func (p *DataPayload) Len() int {
	return len(p.data)
}

// FromPayload - wrap a payload and compute its commitment
//
// the payload is not copied
func FromPayload(payload []byte) (*TransactionData, error) {
	if len(payload) >= constants.MaximumDataPayload {
		return nil, fault.OversizedPayload
	}
	return &TransactionData{
		Payload: &DataPayload{data: payload},
		Info:    Compute(payload),
	}, nil
}

// FromInfoOnly - a record for which only the commitment is known
func FromInfoOnly(info DataInfo) *TransactionData {
	return &TransactionData{
		Info: info,
	}
}

// HasPayload - true if the payload is present
func (data *TransactionData) HasPayload() bool {
	return nil != data.Payload
}

// Discard - drop the payload keeping only the commitment
func (data *TransactionData) Discard() {
	data.Payload = nil
}

// Verify - recompute the commitment of a present payload
//
// a record without payload has nothing to check and is accepted
func Verify(data *TransactionData) bool {
	return nil == Check(data)
}

// Check - as Verify but gives the reason for a rejection
func Check(data *TransactionData) error {
	if nil == data.Payload {
		return nil
	}
	if len(data.Payload.data) >= constants.MaximumDataPayload {
		return fault.OversizedPayload
	}
	if Compute(data.Payload.data) != data.Info {
		return fault.CommitmentMismatch
	}
	return nil
}

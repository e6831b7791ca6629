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

// Chunks - split a payload into consecutive ChunkSize slices
//
// the last chunk may be short, an empty payload has no chunks
// the chunks share the payload's backing array
func Chunks(payload []byte) [][]byte {
	n := ChunkCount(uint64(len(payload)))
	chunks := make([][]byte, 0, n)
	for start := 0; start < len(payload); start += constants.ChunkSize {
		end := start + constants.ChunkSize
		if end > len(payload) {
			end = len(payload)
		}
		chunks = append(chunks, payload[start:end:end])
	}
	return chunks
}

// ChunkCount - number of chunks in a payload of the given size
func ChunkCount(size uint64) int {
	return int((size + constants.ChunkSize - 1) / constants.ChunkSize)
}

// Compute - the commitment of a payload
func Compute(payload []byte) DataInfo {
	return DataInfo{
		Size:      uint64(len(payload)),
		ChunkRoot: merkle.Root(leafDigests(payload)),
	}
}

func leafDigests(payload []byte) []merkle.Digest {
	chunks := Chunks(payload)
	leaves := make([]merkle.Digest, len(chunks))
	for i, c := range chunks {
		leaves[i] = merkle.LeafDigest(c)
	}
	return leaves
}

// ChunkProof - a chunk of the payload and its path to the chunk root
func (data *TransactionData) ChunkProof(index int) ([]byte, []merkle.Digest, error) {
	if nil == data.Payload {
		return nil, nil, fault.MissingPayload
	}
	chunks := Chunks(data.Payload.data)
	if index < 0 || index >= len(chunks) {
		return nil, nil, fault.InvalidChunkIndex
	}
	proof, err := merkle.Proof(leafDigests(data.Payload.data), index)
	if nil != err {
		return nil, nil, err
	}
	return chunks[index], proof, nil
}

// VerifyChunk - check a single chunk against a commitment
func VerifyChunk(info DataInfo, index int, chunk []byte, proof []merkle.Digest) error {
	if info.Size >= constants.MaximumDataPayload {
		return fault.OversizedPayload
	}
	count := ChunkCount(info.Size)
	if index < 0 || index >= count {
		return fault.InvalidChunkIndex
	}

	expected := constants.ChunkSize
	if index == count-1 {
		expected = int(info.Size - uint64(index)*constants.ChunkSize)
	}
	if len(chunk) != expected {
		return fault.InvalidChunkProof
	}

	if !merkle.VerifyProof(info.ChunkRoot, merkle.LeafDigest(chunk), index, count, proof) {
		return fault.InvalidChunkProof
	}
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package transactiondata - data payloads attached to transactions
//
// A payload is split into ChunkSize chunks and committed to by the
// Merkle root of those chunks.  Only the DataInfo (size and root)
// enters chain state, the payload itself may be kept in perma
// storage under a key derived from the DataInfo.
package transactiondata

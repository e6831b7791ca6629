// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package constants

import (
	"time"
)

// the commitment scheme - these must match on every node
const (
	// ChunkSize - bytes per chunk of a transaction data payload (256 KiB)
	ChunkSize = 256 * 1024

	// MaximumDataPayload - a payload must be strictly shorter than this (10 MiB)
	MaximumDataPayload = 10 * 1024 * 1024
)

// the maximum number of chunks in any valid payload
const (
	MaximumChunks = (MaximumDataPayload - 1 + ChunkSize - 1) / ChunkSize
)

// background storage maintenance never runs more often than this
const (
	MinimumMaintenanceInterval = time.Minute
)

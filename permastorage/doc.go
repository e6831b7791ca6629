// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package permastorage - permanent off-chain key value store
//
// Values written here are never expired.  The durable backend keeps
// them in the PermaStorage column of the node database, the in-memory
// backend is for tests and tools.
//
// A node holds exactly one store, wrapped in a Shared handle that
// serialises writers and is released when its last user is done.
package permastorage

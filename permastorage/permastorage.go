// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package permastorage

// PermaStorage - a permanent key value store
//
// Get reports found = false for an absent key, removing an absent
// key succeeds
type PermaStorage interface {
	Set(key []byte, value []byte) error
	Remove(key []byte) error
	Get(key []byte) ([]byte, bool, error)
}

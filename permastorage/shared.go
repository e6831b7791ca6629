// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package permastorage

import (
	"io"
	"sync"

	"github.com/canyon-network/canyond/counter"
	"github.com/canyon-network/canyond/fault"
)

// Shared - reference counted handle to the single node store
//
// writers hold the write lock, readers the read lock
type Shared struct {
	data     *sharedData
	released bool
}

type sharedData struct {
	sync.RWMutex
	store PermaStorage
	refs  counter.Counter
}

// NewShared - the first handle to store
//
// if store is an io.Closer it is closed by the last Release
func NewShared(store PermaStorage) *Shared {
	d := &sharedData{
		store: store,
	}
	d.refs.Increment()
	return &Shared{
		data: d,
	}
}

// Clone - another handle to the same store
func (s *Shared) Clone() *Shared {
	s.data.refs.Increment()
	return &Shared{
		data: s.data,
	}
}

// Release - drop this handle
//
// the handle is unusable afterwards even while clones remain
func (s *Shared) Release() error {
	if s.released {
		return nil
	}
	s.released = true

	if 0 != s.data.refs.Decrement() {
		return nil
	}

	s.data.Lock()
	defer s.data.Unlock()

	store := s.data.store
	s.data.store = nil
	if c, ok := store.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// References - number of live handles
func (s *Shared) References() uint64 {
	return s.data.refs.Uint64()
}

// Set - write under the write lock
func (s *Shared) Set(key []byte, value []byte) error {
	s.data.Lock()
	defer s.data.Unlock()

	if s.released || nil == s.data.store {
		return fault.StorageClosed
	}
	return s.data.store.Set(key, value)
}

// Remove - delete under the write lock
func (s *Shared) Remove(key []byte) error {
	s.data.Lock()
	defer s.data.Unlock()

	if s.released || nil == s.data.store {
		return fault.StorageClosed
	}
	return s.data.store.Remove(key)
}

// Get - read under the read lock
func (s *Shared) Get(key []byte) ([]byte, bool, error) {
	s.data.RLock()
	defer s.data.RUnlock()

	if s.released || nil == s.data.store {
		return nil, false, fault.StorageClosed
	}
	return s.data.store.Get(key)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package permastorage

import (
	"sort"
	"sync"
)

// InMemory - volatile backend
type InMemory struct {
	sync.RWMutex
	items map[string][]byte
}

// NewInMemory - an empty in-memory store
func NewInMemory() *InMemory {
	return &InMemory{
		items: make(map[string][]byte),
	}
}

// Set - store a copy of value
func (m *InMemory) Set(key []byte, value []byte) error {
	m.Lock()
	m.items[string(key)] = append([]byte{}, value...)
	m.Unlock()
	return nil
}

// Remove - delete a key
func (m *InMemory) Remove(key []byte) error {
	m.Lock()
	delete(m.items, string(key))
	m.Unlock()
	return nil
}

// Get - read a value
func (m *InMemory) Get(key []byte) ([]byte, bool, error) {
	m.RLock()
	defer m.RUnlock()

	value, ok := m.items[string(key)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, value...), true, nil
}

// Len - number of values held
func (m *InMemory) Len() int {
	m.RLock()
	defer m.RUnlock()
	return len(m.items)
}

// Iterate - call fn for each key in ascending order until it returns false
//
// fn must not modify the store
func (m *InMemory) Iterate(fn func(key []byte, value []byte) bool) {
	m.RLock()
	defer m.RUnlock()

	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if !fn([]byte(k), m.items[k]) {
			return
		}
	}
}

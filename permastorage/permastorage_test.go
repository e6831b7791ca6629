// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package permastorage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/permastorage"
)

// run the same checks against every backend
func backends(t *testing.T) map[string]permastorage.PermaStorage {
	return map[string]permastorage.PermaStorage{
		"in-memory": permastorage.NewInMemory(),
		"leveldb":   permastorage.NewDataStorage(openTestDatabase(t, testDatabaseName(t), false)),
		"shared":    permastorage.NewShared(permastorage.NewInMemory()),
	}
}

func TestSetThenGet(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	for name, store := range backends(t) {
		_, found, err := store.Get([]byte("key"))
		assert.Nil(t, err, "%s: get error", name)
		assert.False(t, found, "%s: found before set", name)

		err = store.Set([]byte("key"), []byte("value"))
		assert.Nil(t, err, "%s: set error", name)

		value, found, err := store.Get([]byte("key"))
		assert.Nil(t, err, "%s: get error", name)
		assert.True(t, found, "%s: not found", name)
		assert.Equal(t, []byte("value"), value, "%s: wrong value", name)

		err = store.Set([]byte("key"), []byte("replaced"))
		assert.Nil(t, err, "%s: overwrite error", name)

		value, _, _ = store.Get([]byte("key"))
		assert.Equal(t, []byte("replaced"), value, "%s: not overwritten", name)

		err = store.Set([]byte("empty"), []byte{})
		assert.Nil(t, err, "%s: set empty error", name)
		value, found, _ = store.Get([]byte("empty"))
		assert.True(t, found, "%s: empty value not found", name)
		assert.Equal(t, 0, len(value), "%s: empty value", name)

		closeStore(store)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	for name, store := range backends(t) {
		assert.Nil(t, store.Set([]byte("key"), []byte("value")), "%s: set error", name)

		assert.Nil(t, store.Remove([]byte("key")), "%s: first remove", name)
		assert.Nil(t, store.Remove([]byte("key")), "%s: second remove", name)
		assert.Nil(t, store.Remove([]byte("never written")), "%s: absent remove", name)

		_, found, err := store.Get([]byte("key"))
		assert.Nil(t, err, "%s: get error", name)
		assert.False(t, found, "%s: found after remove", name)

		closeStore(store)
	}
}

func closeStore(store permastorage.PermaStorage) {
	switch s := store.(type) {
	case *permastorage.DataStorage:
		s.Close()
	case *permastorage.Shared:
		s.Release()
	}
}

func TestDataStorageDurable(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	name := testDatabaseName(t)

	store := permastorage.NewDataStorage(openTestDatabase(t, name, false))
	assert.Nil(t, store.Set([]byte("key"), []byte("value")), "set error")
	assert.Nil(t, store.Set([]byte("other"), []byte("data")), "set error")
	n, err := store.Len()
	assert.Nil(t, err, "len error")
	assert.Equal(t, 2, n, "wrong length")
	assert.Nil(t, store.Close(), "close error")

	store = permastorage.NewDataStorage(openTestDatabase(t, name, false))
	defer store.Close()

	value, found, err := store.Get([]byte("key"))
	assert.Nil(t, err, "get error")
	assert.True(t, found, "lost across reopen")
	assert.Equal(t, []byte("value"), value, "wrong value")
}

func TestDataStorageCommitFailed(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	name := testDatabaseName(t)
	openTestDatabase(t, name, false).Close()

	store := permastorage.NewDataStorage(openTestDatabase(t, name, true))
	defer store.Close()

	err := store.Set([]byte("key"), []byte("value"))
	assert.True(t, errors.Is(err, fault.StorageCommitFailed), "wrong error: %v", err)
	assert.True(t, fault.IsErrStorage(err), "not a storage error: %v", err)

	err = store.Remove([]byte("key"))
	assert.True(t, errors.Is(err, fault.StorageCommitFailed), "wrong error: %v", err)

	_, found, err := store.Get([]byte("key"))
	assert.Nil(t, err, "read only get error")
	assert.False(t, found, "failed write is visible")
}

func TestDataStorageReadFailed(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	store := permastorage.NewDataStorage(openTestDatabase(t, testDatabaseName(t), false))
	store.Close()

	_, _, err := store.Get([]byte("key"))
	assert.True(t, errors.Is(err, fault.StorageReadFailed), "wrong error: %v", err)
}

func TestInMemoryIterate(t *testing.T) {
	m := permastorage.NewInMemory()
	m.Set([]byte("b"), []byte("2"))
	m.Set([]byte("c"), []byte("3"))
	m.Set([]byte("a"), []byte("1"))

	assert.Equal(t, 3, m.Len(), "wrong length")

	keys := ""
	values := ""
	m.Iterate(func(key []byte, value []byte) bool {
		keys += string(key)
		values += string(value)
		return true
	})
	assert.Equal(t, "abc", keys, "wrong key order")
	assert.Equal(t, "123", values, "wrong values")

	n := 0
	m.Iterate(func(key []byte, value []byte) bool {
		n += 1
		return false
	})
	assert.Equal(t, 1, n, "iteration did not stop")
}

func TestValuesAreCopied(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	for name, store := range backends(t) {
		buffer := []byte("value")
		assert.Nil(t, store.Set([]byte("key"), buffer), "%s: set error", name)
		buffer[0] = 'X'

		value, _, _ := store.Get([]byte("key"))
		assert.Equal(t, []byte("value"), value, "%s: stored caller buffer", name)

		value[0] = 'Y'
		again, _, _ := store.Get([]byte("key"))
		assert.Equal(t, []byte("value"), again, "%s: returned internal buffer", name)

		closeStore(store)
	}
}

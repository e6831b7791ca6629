// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/canyon-network/canyond/fault"
)

// Column - a prefixed key space within the database
type Column struct {
	name   string
	prefix byte
	limit  []byte
}

func newColumn(name string, prefix byte) *Column {
	limit := []byte(nil)
	if prefix < 255 {
		limit = []byte{prefix + 1}
	}
	return &Column{
		name:   name,
		prefix: prefix,
		limit:  limit,
	}
}

// Name - the field name from Columns
func (c *Column) Name() string {
	return c.name
}

// Prefix - the single byte prepended to every key of the column
func (c *Column) Prefix() byte {
	return c.prefix
}

// prepend the prefix onto the key
func (c *Column) prefixKey(key []byte) []byte {
	prefixedKey := make([]byte, 1, len(key)+1)
	prefixedKey[0] = c.prefix
	return append(prefixedKey, key...)
}

func (c *Column) keyRange() *ldb_util.Range {
	return &ldb_util.Range{
		Start: []byte{c.prefix},
		Limit: c.limit,
	}
}

// Get - read a value from a column
//
// the second result is false if the key is not present
func (d *Database) Get(column *Column, key []byte) ([]byte, bool, error) {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return nil, false, fault.StorageClosed
	}

	prefixedKey := column.prefixKey(key)

	value, present, cached := d.cache.Get(string(prefixedKey))
	if cached {
		if !present {
			return nil, false, nil
		}
		return append([]byte{}, value...), true, nil
	}

	value, err := d.db.Get(prefixedKey, nil)
	if leveldb.ErrNotFound == err {
		return nil, false, nil
	} else if nil != err {
		return nil, false, err
	}
	return value, true, nil
}

// Has - check if a key is present in a column
func (d *Database) Has(column *Column, key []byte) (bool, error) {
	_, found, err := d.Get(column, key)
	return found, err
}

// Element - a key and value read back from a column
type Element struct {
	Key   []byte
	Value []byte
}

// Iterate - call fn for every element of a column in key order
//
// the key is passed without its prefix, iteration stops at the first
// error returned by fn
func (d *Database) Iterate(column *Column, fn func(Element) error) error {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return fault.StorageClosed
	}

	iter := d.db.NewIterator(column.keyRange(), nil)
	defer iter.Release()

	for iter.Next() {
		key := iter.Key()
		value := iter.Value()

		e := Element{
			Key:   make([]byte, len(key)-1),
			Value: make([]byte, len(value)),
		}
		copy(e.Key, key[1:])
		copy(e.Value, value)

		if err := fn(e); nil != err {
			return err
		}
	}
	return iter.Error()
}

// Count - number of elements in a column
func (d *Database) Count(column *Column) (int, error) {
	n := 0
	err := d.Iterate(column, func(_ Element) error {
		n += 1
		return nil
	})
	return n, err
}

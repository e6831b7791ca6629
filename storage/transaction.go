// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/canyon-network/canyond/fault"
)

// Transaction - a set of changes applied atomically by Commit
type Transaction struct {
	sync.Mutex
	batch     *leveldb.Batch
	pending   []cacheOperation
	committed bool
}

type cacheOperation struct {
	op    int
	key   string
	value []byte
}

// NewTransaction - start an empty transaction
func NewTransaction() *Transaction {
	return &Transaction{
		batch: new(leveldb.Batch),
	}
}

// Set - write a value to a column
func (tx *Transaction) Set(column *Column, key []byte, value []byte) {
	tx.Lock()
	defer tx.Unlock()

	prefixedKey := column.prefixKey(key)
	copied := append([]byte{}, value...)
	tx.batch.Put(prefixedKey, copied)
	tx.pending = append(tx.pending, cacheOperation{
		op:    dbPut,
		key:   string(prefixedKey),
		value: copied,
	})
}

// Remove - delete a key from a column
func (tx *Transaction) Remove(column *Column, key []byte) {
	tx.Lock()
	defer tx.Unlock()

	prefixedKey := column.prefixKey(key)
	tx.batch.Delete(prefixedKey)
	tx.pending = append(tx.pending, cacheOperation{
		op:  dbDelete,
		key: string(prefixedKey),
	})
}

// Len - number of changes in the transaction
func (tx *Transaction) Len() int {
	tx.Lock()
	defer tx.Unlock()
	return tx.batch.Len()
}

// Commit - write all changes of a transaction as a single batch
//
// the read cache is only updated once the batch is on disk and a
// transaction can only be committed once
func (d *Database) Commit(tx *Transaction) error {
	tx.Lock()
	defer tx.Unlock()

	if tx.committed {
		return fault.TransactionInUse
	}

	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return fault.StorageClosed
	}

	err := d.db.Write(tx.batch, nil)
	if nil != err {
		d.log.Errorf("commit: %d changes  error: %s", tx.batch.Len(), err)
		return err
	}

	for _, p := range tx.pending {
		d.cache.Set(p.op, p.key, p.value)
	}
	tx.committed = true
	tx.pending = nil
	tx.batch.Reset()

	return nil
}

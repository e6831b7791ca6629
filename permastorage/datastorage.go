// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package permastorage

import (
	"fmt"

	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/storage"
)

// DataStorage - durable backend over the node database
type DataStorage struct {
	log    *logger.L
	db     *storage.Database
	column *storage.Column
}

// NewDataStorage - perma storage in the PermaStorage column of db
func NewDataStorage(db *storage.Database) *DataStorage {
	return &DataStorage{
		log:    logger.New("permastorage"),
		db:     db,
		column: db.Columns.PermaStorage,
	}
}

// Set - write a single value
func (s *DataStorage) Set(key []byte, value []byte) error {
	tx := storage.NewTransaction()
	tx.Set(s.column, key, value)
	return s.commit("set", key, tx)
}

// Remove - delete a single value
func (s *DataStorage) Remove(key []byte) error {
	tx := storage.NewTransaction()
	tx.Remove(s.column, key)
	return s.commit("remove", key, tx)
}

func (s *DataStorage) commit(operation string, key []byte, tx *storage.Transaction) error {
	err := s.db.Commit(tx)
	if nil != err {
		s.log.Errorf("%s: key: %x  error: %s", operation, key, err)
		return fmt.Errorf("%w: %s", fault.StorageCommitFailed, err)
	}
	return nil
}

// Get - read a single value
func (s *DataStorage) Get(key []byte) ([]byte, bool, error) {
	value, found, err := s.db.Get(s.column, key)
	if nil != err {
		s.log.Errorf("get: key: %x  error: %s", key, err)
		return nil, false, fmt.Errorf("%w: %s", fault.StorageReadFailed, err)
	}
	return value, found, nil
}

// Len - number of values held
func (s *DataStorage) Len() (int, error) {
	return s.db.Count(s.column)
}

// Close - close the underlying database
func (s *DataStorage) Close() error {
	return s.db.Close()
}

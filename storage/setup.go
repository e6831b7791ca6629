// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"encoding/binary"
	"fmt"
	"reflect"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/fault"
)

// Columns - the set of exported columns
//
// note all must be exported (i.e. initial capital) or Open will fail
type Columns struct {
	PermaStorage *Column `prefix:"P"`
}

// Database - one leveldb database and its read cache
type Database struct {
	sync.RWMutex
	log     *logger.L
	name    string
	db      *leveldb.DB
	cache   Cache
	Columns Columns
}

// for database version
var versionKey = []byte{0x00, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}

const (
	currentVersion = 0x100
)

// database access modes
const (
	ReadOnly  = true
	ReadWrite = false
)

// Open - open a database, creating it if necessary
//
// an empty database is tagged with the current version and a
// database from a newer release is refused
func Open(name string, readOnly bool) (*Database, error) {
	return open(name, readOnly, newCache())
}

func open(name string, readOnly bool, cache Cache) (*Database, error) {
	log := logger.New("storage")

	db, version, err := getDB(name, readOnly)
	if nil != err {
		log.Errorf("open: %q  error: %s", name, err)
		return nil, err
	}

	ok := false
	defer func() {
		if !ok {
			db.Close()
		}
	}()

	if version > currentVersion {
		log.Criticalf("database version: %d > current version: %d", version, currentVersion)
		return nil, fmt.Errorf("%w: %d > %d", fault.DatabaseVersionMismatch, version, currentVersion)
	}

	if 0 == version && !readOnly {
		// database was empty so tag as current version
		err = putVersion(db, currentVersion)
		if nil != err {
			return nil, err
		}
	}

	d := &Database{
		log:   log,
		name:  name,
		db:    db,
		cache: cache,
	}

	err = d.setColumns()
	if nil != err {
		return nil, err
	}

	log.Infof("opened: %q  version: %d  read only: %t", name, version, readOnly)

	ok = true // prevent db close
	return d, nil
}

// scan the Columns struct tags and allocate each column
func (d *Database) setColumns() error {

	// this will be a struct type
	columnType := reflect.TypeOf(d.Columns)

	// get write access by using pointer + Elem()
	columnValue := reflect.ValueOf(&d.Columns).Elem()

	seen := make(map[byte]string)
	for i := 0; i < columnType.NumField(); i += 1 {

		fieldInfo := columnType.Field(i)

		prefixTag := fieldInfo.Tag.Get("prefix")
		if 1 != len(prefixTag) {
			return fmt.Errorf("column: %s has invalid prefix: %q", fieldInfo.Name, prefixTag)
		}

		prefix := prefixTag[0]
		if other, ok := seen[prefix]; ok {
			return fmt.Errorf("column: %s has the same prefix as: %s", fieldInfo.Name, other)
		}
		seen[prefix] = fieldInfo.Name

		columnValue.Field(i).Set(reflect.ValueOf(newColumn(fieldInfo.Name, prefix)))
	}
	return nil
}

// Close - close the database
//
// further access returns fault.StorageClosed
func (d *Database) Close() error {
	d.Lock()
	defer d.Unlock()

	if nil == d.db {
		return nil
	}
	err := d.db.Close()
	d.db = nil
	d.cache.Clear()
	d.log.Infof("closed: %q", d.name)
	return err
}

// Compact - compact the whole key space
func (d *Database) Compact() error {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return fault.StorageClosed
	}
	return d.db.CompactRange(ldb_util.Range{})
}

// Stats - the leveldb statistics table
func (d *Database) Stats() (string, error) {
	d.RLock()
	defer d.RUnlock()

	if nil == d.db {
		return "", fault.StorageClosed
	}
	return d.db.GetProperty("leveldb.stats")
}

// return:
//   database handle
//   version number
func getDB(name string, readOnly bool) (*leveldb.DB, int, error) {
	opt := &ldb_opt.Options{
		ErrorIfExist:   false,
		ErrorIfMissing: readOnly,
		ReadOnly:       readOnly,
	}

	db, err := leveldb.OpenFile(name, opt)
	if nil != err {
		return nil, 0, err
	}

	versionValue, err := db.Get(versionKey, nil)
	if leveldb.ErrNotFound == err {
		return db, 0, nil
	} else if nil != err {
		db.Close()
		return nil, 0, err
	}

	if 4 != len(versionValue) {
		db.Close()
		return nil, 0, fmt.Errorf("%w: version length: expected: %d  actual: %d", fault.DatabaseVersionMismatch, 4, len(versionValue))
	}

	version := int(binary.BigEndian.Uint32(versionValue))
	return db, version, nil
}

func putVersion(db *leveldb.DB, version int) error {
	currentVersion := make([]byte, 4)
	binary.BigEndian.PutUint32(currentVersion, uint32(version))

	return db.Put(versionKey, currentVersion, nil)
}

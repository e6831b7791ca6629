// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package permastorage

import (
	"github.com/bitmark-inc/logger"
)

type fireAndForget struct {
	log   *logger.L
	store PermaStorage
}

// FireAndForget - wrap a store so that failures are logged and then
// ignored
//
// a failed write looks successful and a failed read looks like an
// absent key
func FireAndForget(store PermaStorage, log *logger.L) PermaStorage {
	return &fireAndForget{
		log:   log,
		store: store,
	}
}

func (f *fireAndForget) Set(key []byte, value []byte) error {
	if err := f.store.Set(key, value); nil != err {
		f.log.Errorf("set: key: %x  ignored error: %s", key, err)
	}
	return nil
}

func (f *fireAndForget) Remove(key []byte) error {
	if err := f.store.Remove(key); nil != err {
		f.log.Errorf("remove: key: %x  ignored error: %s", key, err)
	}
	return nil
}

func (f *fireAndForget) Get(key []byte) ([]byte, bool, error) {
	value, found, err := f.store.Get(key)
	if nil != err {
		f.log.Errorf("get: key: %x  ignored error: %s", key, err)
		return nil, false, nil
	}
	return value, found, nil
}

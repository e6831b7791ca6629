// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package permastorage_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/permastorage"
	"github.com/canyon-network/canyond/permastorage/mocks"
)

func TestFireAndForget(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	ctl := gomock.NewController(t)
	defer ctl.Finish()

	m := mocks.NewMockPermaStorage(ctl)
	store := permastorage.FireAndForget(m, logger.New("testing"))

	m.EXPECT().Set([]byte("key"), []byte("value")).Return(fault.StorageCommitFailed).Times(1)
	assert.Nil(t, store.Set([]byte("key"), []byte("value")), "set error not ignored")

	m.EXPECT().Remove([]byte("key")).Return(fault.StorageCommitFailed).Times(1)
	assert.Nil(t, store.Remove([]byte("key")), "remove error not ignored")

	m.EXPECT().Get([]byte("key")).Return(nil, false, fault.StorageReadFailed).Times(1)
	value, found, err := store.Get([]byte("key"))
	assert.Nil(t, err, "get error not ignored")
	assert.False(t, found, "failed read reported found")
	assert.Nil(t, value, "failed read has value")

	m.EXPECT().Get([]byte("present")).Return([]byte("v"), true, nil).Times(1)
	value, found, err = store.Get([]byte("present"))
	assert.Nil(t, err, "get error")
	assert.True(t, found, "not found")
	assert.Equal(t, []byte("v"), value, "wrong value")
}

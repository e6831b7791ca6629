// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/canyon-network/canyond/background"
)

func TestMaintainer(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	d, _ := openTestDatabase(t)
	defer d.Close()

	tx := NewTransaction()
	tx.Set(d.Columns.PermaStorage, []byte("key"), []byte("value"))
	assert.Nil(t, d.Commit(tx), "commit error")

	p := background.Start(background.Processes{NewMaintainer(d, 5*time.Millisecond)}, nil)
	time.Sleep(30 * time.Millisecond)
	p.Stop()

	value, found, err := d.Get(d.Columns.PermaStorage, []byte("key"))
	assert.Nil(t, err, "get error")
	assert.True(t, found, "lost by maintenance")
	assert.Equal(t, []byte("value"), value, "wrong value")
}

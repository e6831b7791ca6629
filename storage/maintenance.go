// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"time"

	"github.com/canyon-network/canyond/background"
)

type maintainer struct {
	db       *Database
	interval time.Duration
}

// NewMaintainer - background process that periodically compacts the
// database and logs its statistics
func NewMaintainer(db *Database, interval time.Duration) background.Process {
	return &maintainer{
		db:       db,
		interval: interval,
	}
}

func (m *maintainer) Run(args interface{}, shutdown <-chan struct{}) {
	log := m.db.log
	log.Infof("maintenance every: %s", m.interval)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.maintain()
		case <-shutdown:
			log.Info("maintenance stopped")
			return
		}
	}
}

func (m *maintainer) maintain() {
	log := m.db.log

	start := time.Now()
	if err := m.db.Compact(); nil != err {
		log.Errorf("compact error: %s", err)
		return
	}

	n, err := m.db.Count(m.db.Columns.PermaStorage)
	if nil != err {
		log.Errorf("count error: %s", err)
		return
	}
	log.Infof("compacted in: %s  perma storage items: %d", time.Since(start), n)

	if stats, err := m.db.Stats(); nil == err {
		log.Debugf("leveldb stats:\n%s", stats)
	}
}

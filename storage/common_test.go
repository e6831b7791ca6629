// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bitmark-inc/logger"
)

const (
	testingDirName = "testing"
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func removeFiles() {
	os.RemoveAll(testingDirName)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func testDatabaseName(t *testing.T) string {
	return filepath.Join(t.TempDir(), "test.leveldb")
}

func openTestDatabase(t *testing.T) (*Database, string) {
	name := testDatabaseName(t)
	d, err := Open(name, ReadWrite)
	if nil != err {
		t.Fatalf("storage open error: %s", err)
	}
	return d, name
}

// a column outside the production set, for key space separation checks
var testData = newColumn("TestData", 'Z')

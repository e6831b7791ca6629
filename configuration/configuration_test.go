// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/canyon-network/canyond/background"
	"github.com/canyon-network/canyond/configuration"
	"github.com/canyon-network/canyond/fault"
)

const minimalConfiguration = `
return {
    data_directory = ".",
}
`

const fullConfiguration = `
local unsafe = os.getenv("CANYOND_TEST_UNSAFE") or "local"

return {
    data_directory = ".",
    pidfile = "canyond.pid",
    retain_payloads = false,
    database = {
        directory = "db",
        name = "test.leveldb",
    },
    client_rpc = {
        maximum_connections = 50,
        listen = { "127.0.0.1:2130", "[::1]:2130" },
        certificate = "client.crt",
        private_key = "client.key",
        unsafe = unsafe,
    },
    https_rpc = {
        maximum_connections = 20,
        listen = { "*:2131" },
        unsafe = "safe",
    },
    maintenance = {
        interval = "10m",
    },
    logging = {
        size = 4096,
        count = 5,
        levels = {
            DEFAULT = "info",
            rpc = "debug",
        },
    },
}
`

func writeConfiguration(t *testing.T, dir string, text string) string {
	fileName := filepath.Join(dir, "canyond.conf")
	err := ioutil.WriteFile(fileName, []byte(text), 0o600)
	if nil != err {
		t.Fatalf("write configuration error: %s", err)
	}
	return fileName
}

func TestDefaults(t *testing.T) {
	dir := t.TempDir()
	fileName := writeConfiguration(t, dir, minimalConfiguration)

	c, err := configuration.Get(fileName)
	if !assert.Nil(t, err, "get") {
		t.FailNow()
	}

	assert.Equal(t, filepath.Clean(dir), c.DataDirectory, "wrong data directory")
	assert.Equal(t, "", c.PidFile, "pidfile set")
	assert.True(t, c.RetainPayloads, "payloads not retained by default")
	assert.Equal(t, filepath.Join(dir, "data"), c.Database.Directory, "wrong database directory")
	assert.Equal(t, filepath.Join(dir, "data", "canyond.leveldb"), c.Database.Name, "wrong database name")
	assert.Equal(t, uint64(10), c.ClientRPC.MaximumConnections, "wrong rpc maximum")
	assert.Equal(t, filepath.Join(dir, "rpc.crt"), c.ClientRPC.Certificate, "wrong certificate")
	assert.Equal(t, filepath.Join(dir, "rpc.key"), c.HttpsRPC.PrivateKey, "wrong https key")
	assert.Equal(t, "", c.ClientRPC.Unsafe, "unsafe policy set")
	assert.Equal(t, time.Hour, c.MaintenanceInterval(), "wrong maintenance interval")
	assert.Equal(t, filepath.Join(dir, "log"), c.Logging.Directory, "wrong log directory")
	assert.Equal(t, "canyond.log", c.Logging.File, "wrong log file")

	info, err := os.Stat(c.Database.Directory)
	assert.Nil(t, err, "database directory not created")
	assert.True(t, info.IsDir(), "database directory is not a directory")
}

func TestFull(t *testing.T) {
	dir := t.TempDir()
	fileName := writeConfiguration(t, dir, fullConfiguration)

	err := os.Setenv("CANYOND_TEST_UNSAFE", "unsafe")
	if nil != err {
		t.Fatalf("setenv error: %s", err)
	}
	defer os.Unsetenv("CANYOND_TEST_UNSAFE")

	c, err := configuration.Get(fileName)
	if !assert.Nil(t, err, "get") {
		t.FailNow()
	}

	assert.Equal(t, filepath.Join(dir, "canyond.pid"), c.PidFile, "wrong pidfile")
	assert.False(t, c.RetainPayloads, "wrong retain payloads")
	assert.Equal(t, filepath.Join(dir, "db", "test.leveldb"), c.Database.Name, "wrong database")
	assert.Equal(t, uint64(50), c.ClientRPC.MaximumConnections, "wrong rpc maximum")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, c.ClientRPC.Listen, "wrong rpc listen")
	assert.Equal(t, filepath.Join(dir, "client.crt"), c.ClientRPC.Certificate, "wrong certificate")
	assert.Equal(t, "unsafe", c.ClientRPC.Unsafe, "environment not used")
	assert.Equal(t, "safe", c.HttpsRPC.Unsafe, "wrong https policy")
	assert.Equal(t, []string{"*:2131"}, c.HttpsRPC.Listen, "wrong https listen")
	assert.Equal(t, 10*time.Minute, c.MaintenanceInterval(), "wrong maintenance interval")
	assert.Equal(t, 5, c.Logging.Count, "wrong log count")
	assert.Equal(t, "debug", c.Logging.Levels["rpc"], "wrong log level")
}

func TestInvalid(t *testing.T) {
	items := []struct {
		name string
		text string
	}{
		{"no data directory", `return {}`},
		{"missing data directory", `return { data_directory = "/does/not/exist/canyond" }`},
		{"path as database name", `return { data_directory = ".", database = { name = "a/b.leveldb" } }`},
		{"bad interval", `return { data_directory = ".", maintenance = { interval = "often" } }`},
		{"lua error", `return { data_directory = `},
	}

	for _, item := range items {
		dir := t.TempDir()
		fileName := writeConfiguration(t, dir, item.text)
		_, err := configuration.Get(fileName)
		assert.NotNil(t, err, "accepted: %s", item.name)
	}
}

func TestParseNotStruct(t *testing.T) {
	dir := t.TempDir()
	fileName := writeConfiguration(t, dir, minimalConfiguration)

	var s string
	err := configuration.ParseConfigurationFile(fileName, &s)
	assert.Equal(t, fault.InvalidStructPointer, err, "wrong error")

	err = configuration.ParseConfigurationFile(fileName, nil)
	assert.Equal(t, fault.InvalidStructPointer, err, "wrong error")
}

func TestMinimumMaintenanceInterval(t *testing.T) {
	c := configuration.Configuration{
		Maintenance: configuration.MaintenanceType{Interval: "1s"},
	}
	assert.Equal(t, time.Minute, c.MaintenanceInterval(), "interval below minimum")
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	fileName := writeConfiguration(t, dir, minimalConfiguration)

	logDirectory := filepath.Join(dir, "log")
	_ = os.Mkdir(logDirectory, 0o700)
	err := logger.Initialise(logger.Configuration{
		Directory: logDirectory,
		File:      "test.log",
		Size:      50000,
		Count:     10,
		Levels:    map[string]string{logger.DefaultTag: "critical"},
	})
	if nil != err {
		t.Fatalf("logger initialise error: %s", err)
	}
	defer logger.Finalise()

	reloaded := make(chan *configuration.Configuration, 4)
	w, err := configuration.NewWatcher(fileName, logger.New("watcher"), func(c *configuration.Configuration) {
		reloaded <- c
	})
	if !assert.Nil(t, err, "new watcher") {
		t.FailNow()
	}

	processes := background.Start(background.Processes{w}, nil)
	defer processes.Stop()

	// allow the watcher to start
	time.Sleep(100 * time.Millisecond)

	writeConfiguration(t, dir, `
return {
    data_directory = ".",
    client_rpc = { unsafe = "unsafe" },
}
`)

	select {
	case c := <-reloaded:
		assert.Equal(t, "unsafe", c.ClientRPC.Unsafe, "change not seen")
	case <-time.After(5 * time.Second):
		t.Fatal("no reload after change")
	}

	// an invalid file keeps the current configuration
	writeConfiguration(t, dir, `return { data_directory = `)
	select {
	case <-reloaded:
		t.Error("reloaded invalid configuration")
	case <-time.After(2 * time.Second):
	}
}

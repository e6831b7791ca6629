// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fixtures

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
)

const (
	dir         = "testing"
	LogCategory = "testing"
)

func SetupTestLogger() {
	removeFiles()
	_ = os.Mkdir(dir, 0700)

	logging := logger.Configuration{
		Directory: dir,
		File:      fmt.Sprintf("%s.log", LogCategory),
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

func TeardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	err := os.RemoveAll(dir)
	if nil != err {
		fmt.Println("remove dir with error: ", err)
	}
}

var keyPair struct {
	once        sync.Once
	certificate string
	key         string
}

// CertificateAndKey - a self signed PEM certificate and key for
// 127.0.0.1, generated once per test binary
func CertificateAndKey() (string, string) {
	keyPair.once.Do(func() {
		validUntil := time.Now().Add(24 * time.Hour)
		cert, key, err := certgen.NewTLSCertPair("canyond test certificate", validUntil, false, []string{"127.0.0.1", "::1"})
		if nil != err {
			panic(fmt.Sprintf("certificate generation error: %s", err))
		}
		keyPair.certificate = string(cert)
		keyPair.key = string(key)
	})
	return keyPair.certificate, keyPair.key
}

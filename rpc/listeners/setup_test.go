// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"net"
	"testing"

	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/rpc/certificate"
	"github.com/canyon-network/canyond/rpc/fixtures"
)

// freeAddress - a loopback address with a currently unused port
func freeAddress(t *testing.T) string {
	l, err := net.Listen("tcp4", "127.0.0.1:0")
	if nil != err {
		t.Fatalf("listen error: %s", err)
	}
	a := l.Addr().String()
	_ = l.Close()
	return a
}

func serverTLS(t *testing.T) *tls.Config {
	cer, key := fixtures.CertificateAndKey()
	tlsConf, _, err := certificate.Get(logger.New(fixtures.LogCategory), "test", cer, key)
	if err != nil {
		t.Fatalf("get certificate with error: %s", err)
	}
	return tlsConf
}

var clientTLS = &tls.Config{
	InsecureSkipVerify: true,
}

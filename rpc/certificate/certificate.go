// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package certificate

import (
	"crypto/tls"
	"fmt"
	"io/ioutil"
	"os"
	"time"

	"github.com/bitmark-inc/certgen"
	"github.com/bitmark-inc/logger"
	"golang.org/x/crypto/sha3"

	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/util"
)

const (
	organisation = "canyond self signed cert"
	validity     = 10 * 365 * 24 * time.Hour
)

// Get - verify that a set of listener parameters are valid
// and return the TLS configuration and certificate fingerprint
func Get(log *logger.L, name, certificate, key string) (*tls.Config, [32]byte, error) {
	var fin [32]byte

	keyPair, err := tls.X509KeyPair([]byte(certificate), []byte(key))
	if err != nil {
		log.Errorf("%s failed to load keypair: %v", name, err)
		return nil, fin, err
	}

	tlsConfiguration := &tls.Config{
		Certificates: []tls.Certificate{
			keyPair,
		},
		MinVersion: tls.VersionTLS12,
	}

	fin = Fingerprint(keyPair.Certificate[0])

	return tlsConfiguration, fin, nil
}

// GetFiles - like Get, reading the PEM data from files
func GetFiles(log *logger.L, name, certificateFile, keyFile string) (*tls.Config, [32]byte, error) {
	certificate, err := ioutil.ReadFile(certificateFile)
	if nil != err {
		log.Errorf("%s certificate: %q  error: %s", name, certificateFile, err)
		return nil, [32]byte{}, err
	}
	key, err := ioutil.ReadFile(keyFile)
	if nil != err {
		log.Errorf("%s private key: %q  error: %s", name, keyFile, err)
		return nil, [32]byte{}, err
	}
	return Get(log, name, string(certificate), string(key))
}

// Fingerprint - compute the SHA3-256 fingerprint of a DER certificate
//
// openssl x509 -outform DER -in canyond-local-rpc.crt | sha3sum -a 256
func Fingerprint(certificate []byte) [32]byte {
	return sha3.Sum256(certificate)
}

// Generate - create a self signed certificate and key pair
//
// existing files are never overwritten
func Generate(certificateFile, keyFile string, extraHosts []string) error {
	if util.EnsureFileExists(certificateFile) {
		return fmt.Errorf("%w: %q", fault.CertificateFileExists, certificateFile)
	}
	if util.EnsureFileExists(keyFile) {
		return fmt.Errorf("%w: %q", fault.KeyFileExists, keyFile)
	}

	certificate, key, err := certgen.NewTLSCertPair(organisation, time.Now().Add(validity), 0 != len(extraHosts), extraHosts)
	if nil != err {
		return err
	}

	if err := ioutil.WriteFile(certificateFile, certificate, 0o666); nil != err {
		return err
	}
	if err := ioutil.WriteFile(keyFile, key, 0o600); nil != err {
		_ = os.Remove(certificateFile)
		return err
	}
	return nil
}

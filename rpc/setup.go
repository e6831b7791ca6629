// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpc

import (
	"sync"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/counter"
	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/permastorage"
	"github.com/canyon-network/canyond/rpc/certificate"
	"github.com/canyon-network/canyond/rpc/handler"
	"github.com/canyon-network/canyond/rpc/listeners"
	"github.com/canyon-network/canyond/rpc/policy"
	"github.com/canyon-network/canyond/rpc/server"
)

const (
	tlsName   = "client_rpc"
	httpsName = "https_rpc"
)

// globals
type rpcData struct {
	sync.RWMutex // to allow locking

	log *logger.L // logger

	rpcPolicy   *policy.Holder
	httpsPolicy *policy.Holder

	listeners []listeners.Listener

	// set once during initialise
	initialised bool
}

// global data
var globalData rpcData

// RPC connections on both transports
var connectionCount counter.Counter

// Initialise - start the RPC listeners serving store
//
// the store is not closed by Finalise
func Initialise(
	rpcConfiguration *listeners.RPCConfiguration,
	httpsConfiguration *listeners.HTTPSConfiguration,
	version string,
	store permastorage.PermaStorage,
) error {

	globalData.Lock()
	defer globalData.Unlock()

	// no need to start if already started
	if globalData.initialised {
		return fault.AlreadyInitialised
	}

	log := logger.New("rpc")
	globalData.log = log
	log.Info("starting…")

	rpcPolicy, err := policy.Parse(rpcConfiguration.Unsafe)
	if nil != err {
		log.Errorf("%s unsafe: %q  error: %s", tlsName, rpcConfiguration.Unsafe, err)
		return err
	}
	httpsPolicy, err := policy.Parse(httpsConfiguration.Unsafe)
	if nil != err {
		log.Errorf("%s unsafe: %q  error: %s", httpsName, httpsConfiguration.Unsafe, err)
		return err
	}
	globalData.rpcPolicy = policy.NewHolder(rpcPolicy)
	globalData.httpsPolicy = policy.NewHolder(httpsPolicy)

	factory := server.New(log, version, &connectionCount, store)

	tlsConfig, fingerprint, err := certificate.GetFiles(log, tlsName, rpcConfiguration.Certificate, rpcConfiguration.PrivateKey)
	if nil != err {
		return err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x  policy: %s", tlsName, fingerprint, rpcPolicy)

	rpcListener, err := listeners.NewRPC(
		rpcConfiguration,
		log,
		&connectionCount,
		factory,
		server.Namespaces,
		globalData.rpcPolicy,
		tlsConfig,
	)
	if nil != err {
		return err
	}

	httpsListener, err := newHTTPS(httpsConfiguration, log, factory, version)
	if nil != err {
		return err
	}

	err = rpcListener.Serve()
	if nil != err {
		return err
	}
	globalData.listeners = append(globalData.listeners, rpcListener)

	if nil != httpsListener {
		err = httpsListener.Serve()
		if nil != err {
			closeListeners()
			return err
		}
		globalData.listeners = append(globalData.listeners, httpsListener)
	}

	// all data initialised
	globalData.initialised = true

	return nil
}

func newHTTPS(configuration *listeners.HTTPSConfiguration, log *logger.L, factory *server.Factory, version string) (listeners.Listener, error) {
	if 0 == len(configuration.Listen) {
		log.Infof("disable: %s", httpsName)
		return nil, nil
	}

	tlsConfig, fingerprint, err := certificate.GetFiles(log, httpsName, configuration.Certificate, configuration.PrivateKey)
	if nil != err {
		return nil, err
	}
	log.Infof("%s: SHA3-256 fingerprint: %x  policy: %s", httpsName, fingerprint, globalData.httpsPolicy.Get())

	h := handler.New(
		log,
		factory,
		server.Namespaces,
		globalData.httpsPolicy,
		time.Now(),
		version,
		configuration.MaximumConnections,
	)

	return listeners.NewHTTPS(configuration, log, tlsConfig, h)
}

// SetPolicies - change the unsafe RPC policy of each transport
//
// only connections opened after the change see the new policy
func SetPolicies(rpcUnsafe string, httpsUnsafe string) error {
	rpcPolicy, err := policy.Parse(rpcUnsafe)
	if nil != err {
		return err
	}
	httpsPolicy, err := policy.Parse(httpsUnsafe)
	if nil != err {
		return err
	}

	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	if previous := globalData.rpcPolicy.Set(rpcPolicy); previous != rpcPolicy {
		globalData.log.Warnf("%s policy: %s -> %s", tlsName, previous, rpcPolicy)
	}
	if previous := globalData.httpsPolicy.Set(httpsPolicy); previous != httpsPolicy {
		globalData.log.Warnf("%s policy: %s -> %s", httpsName, previous, httpsPolicy)
	}
	return nil
}

// Finalise - stop all listeners
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if !globalData.initialised {
		return fault.NotInitialised
	}

	globalData.log.Info("shutting down…")
	globalData.log.Flush()

	closeListeners()

	// finally...
	globalData.initialised = false

	globalData.log.Info("finished")
	globalData.log.Flush()

	return nil
}

func closeListeners() {
	for _, l := range globalData.listeners {
		if err := l.Close(); nil != err {
			globalData.log.Errorf("close listener error: %s", err)
		}
	}
	globalData.listeners = nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package server

import (
	"net/rpc"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/counter"
	"github.com/canyon-network/canyond/permastorage"
	"github.com/canyon-network/canyond/rpc/datastorage"
	"github.com/canyon-network/canyond/rpc/jsonrpc2"
	"github.com/canyon-network/canyond/rpc/node"
	"github.com/canyon-network/canyond/rpc/policy"
)

// Namespaces - wire namespaces of the registered services
var Namespaces = jsonrpc2.Namespaces{
	"datastorage": "DataStorage",
	"node":        "Node",
}

// Factory - creates the RPC server for each connection
//
// services on a connection see the policy resolved for that
// connection, rate limits are shared by all connections
type Factory struct {
	log                *logger.L
	start              time.Time
	version            string
	count              *counter.Counter
	store              permastorage.PermaStorage
	dataStorageLimiter *rate.Limiter
	nodeLimiter        *rate.Limiter
}

// New - a factory for servers over store
func New(log *logger.L, version string, count *counter.Counter, store permastorage.PermaStorage) *Factory {
	return &Factory{
		log:                log,
		start:              time.Now().UTC(),
		version:            version,
		count:              count,
		store:              store,
		dataStorageLimiter: datastorage.NewLimiter(),
		nodeLimiter:        node.NewLimiter(),
	}
}

// Create - server for one connection from remoteAddress
func (f *Factory) Create(p policy.Policy, remoteAddress string) *rpc.Server {
	deny := p.Resolve(remoteAddress)

	server := rpc.NewServer()

	_ = server.Register(datastorage.New(f.log, f.dataStorageLimiter, f.store, deny))
	_ = server.Register(node.New(f.log, f.nodeLimiter, f.start, f.version, f.count, p, deny))

	return server
}

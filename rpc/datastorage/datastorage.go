// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastorage

import (
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/constants"
	"github.com/canyon-network/canyond/permastorage"
	"github.com/canyon-network/canyond/rpc/policy"
	"github.com/canyon-network/canyond/rpc/ratelimit"
	"github.com/canyon-network/canyond/transactiondata"
)

const (
	rateLimitDataStorage = 200
	rateBurstDataStorage = 100
)

// DataStorage - type for RPC calls
//
// every call is unsafe and is refused unless the connection's policy
// allows it
type DataStorage struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Store   permastorage.PermaStorage
	Deny    policy.DenyUnsafe
}

// NewLimiter - limiter shared by all connections
func NewLimiter() *rate.Limiter {
	return rate.NewLimiter(rateLimitDataStorage, rateBurstDataStorage)
}

// New - service for one connection
func New(log *logger.L, limiter *rate.Limiter, store permastorage.PermaStorage, deny policy.DenyUnsafe) *DataStorage {
	return &DataStorage{
		Log:     log,
		Limiter: limiter,
		Store:   store,
		Deny:    deny,
	}
}

// Set - write a value to perma storage
func (ds *DataStorage) Set(arguments *SetArguments, reply *SetReply) error {
	if err := ds.Deny.CheckIfSafe(); nil != err {
		ds.Log.Warnf("set: refused: key: %s", arguments.Key)
		return err
	}

	// larger values cost one token per chunk
	chunks := transactiondata.ChunkCount(uint64(len(arguments.Value)))
	if err := ratelimit.LimitN(ds.Limiter, chunks, constants.MaximumChunks); nil != err {
		return err
	}

	ds.Log.Debugf("set: key: %s  value bytes: %d", arguments.Key, len(arguments.Value))

	if err := ds.Store.Set(arguments.Key, arguments.Value); nil != err {
		ds.Log.Errorf("set: key: %s  error: %s", arguments.Key, err)
		return err
	}
	return nil
}

// Get - read a value from perma storage
func (ds *DataStorage) Get(arguments *GetArguments, reply *GetReply) error {
	if err := ds.Deny.CheckIfSafe(); nil != err {
		ds.Log.Warnf("get: refused: key: %s", arguments.Key)
		return err
	}

	if err := ratelimit.Limit(ds.Limiter); nil != err {
		return err
	}

	value, found, err := ds.Store.Get(arguments.Key)
	if nil != err {
		ds.Log.Errorf("get: key: %s  error: %s", arguments.Key, err)
		return err
	}

	reply.Value = nil
	if found {
		v := Bytes(value)
		reply.Value = &v
	}
	return nil
}

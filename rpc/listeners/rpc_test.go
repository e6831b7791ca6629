// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners_test

import (
	"crypto/tls"
	"net/rpc"
	"testing"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/canyon-network/canyond/counter"
	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/permastorage"
	"github.com/canyon-network/canyond/rpc/datastorage"
	"github.com/canyon-network/canyond/rpc/fixtures"
	"github.com/canyon-network/canyond/rpc/jsonrpc2"
	"github.com/canyon-network/canyond/rpc/listeners"
	"github.com/canyon-network/canyond/rpc/policy"
	"github.com/canyon-network/canyond/rpc/server"
)

func startRPC(t *testing.T, holder *policy.Holder, store permastorage.PermaStorage, maximum uint64) (string, listeners.Listener, *counter.Counter) {
	listen := freeAddress(t)
	con := listeners.RPCConfiguration{
		MaximumConnections: maximum,
		Listen:             []string{listen},
	}

	count := counter.Counter{}
	log := logger.New(fixtures.LogCategory)

	l, err := listeners.NewRPC(
		&con,
		log,
		&count,
		server.New(log, "1.0", &count, store),
		server.Namespaces,
		holder,
		serverTLS(t),
	)
	if nil != err {
		t.Fatalf("NewRPC with error: %s", err)
	}

	err = l.Serve()
	assert.Nil(t, err, "wrong Serve")

	return listen, l, &count
}

func dial(t *testing.T, listen string) *rpc.Client {
	c, err := tls.Dial("tcp", listen, clientTLS)
	if err != nil {
		t.Fatalf("dial with error: %s", err)
	}
	return jsonrpc2.NewClient(c, server.Namespaces)
}

func TestRpcListenerServe(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	store := permastorage.NewInMemory()
	listen, l, _ := startRPC(t, policy.NewHolder(policy.Local), store, 5)
	defer l.Close()

	client := dial(t, listen)
	defer client.Close()

	// the test client is on loopback so the local policy allows writes
	err := client.Call("DataStorage.Set", &datastorage.SetArguments{Key: []byte("key"), Value: []byte("value")}, &datastorage.SetReply{})
	assert.Nil(t, err, "wrong client Call")

	var reply datastorage.GetReply
	err = client.Call("DataStorage.Get", &datastorage.GetArguments{Key: []byte("key")}, &reply)
	assert.Nil(t, err, "wrong client Call")
	if assert.NotNil(t, reply.Value, "missing value") {
		assert.Equal(t, datastorage.Bytes("value"), *reply.Value, "wrong result")
	}
}

func TestRpcListenerPolicyReload(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	store := permastorage.NewInMemory()
	holder := policy.NewHolder(policy.Safe)
	listen, l, _ := startRPC(t, holder, store, 5)
	defer l.Close()

	args := &datastorage.SetArguments{Key: []byte("key"), Value: []byte("value")}

	before := dial(t, listen)
	defer before.Close()
	err := before.Call("DataStorage.Set", args, &datastorage.SetReply{})
	assert.Equal(t, rpc.ServerError(fault.UnsafeRpcCalled.Error()), err, "safe policy allowed set")

	holder.Set(policy.Unsafe)

	// existing connections keep their resolved policy
	err = before.Call("DataStorage.Set", args, &datastorage.SetReply{})
	assert.Equal(t, rpc.ServerError(fault.UnsafeRpcCalled.Error()), err, "policy changed on open connection")
	assert.Equal(t, 0, store.Len(), "denied call wrote to storage")

	after := dial(t, listen)
	defer after.Close()
	err = after.Call("DataStorage.Set", args, &datastorage.SetReply{})
	assert.Nil(t, err, "new connection denied")
	assert.Equal(t, 1, store.Len(), "set not written")
}

func TestRpcListenerConnectionLimit(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	store := permastorage.NewInMemory()
	listen, l, count := startRPC(t, policy.NewHolder(policy.Unsafe), store, 1)
	defer l.Close()

	first := dial(t, listen)
	defer first.Close()
	err := first.Call("DataStorage.Get", &datastorage.GetArguments{Key: []byte("key")}, &datastorage.GetReply{})
	assert.Nil(t, err, "first connection refused")
	assert.Equal(t, uint64(1), count.Uint64(), "wrong connection count")

	// the server closes the excess connection before the handshake
	c, err := tls.Dial("tcp", listen, clientTLS)
	if nil == err {
		second := jsonrpc2.NewClient(c, server.Namespaces)
		err = second.Call("DataStorage.Get", &datastorage.GetArguments{Key: []byte("key")}, &datastorage.GetReply{})
		_ = second.Close()
	}
	assert.NotNil(t, err, "second connection served")

	_ = first.Close()
	assert.Eventually(t, count.IsZero, time.Second, 10*time.Millisecond, "connection count not released")
}

func TestRpcListenerWhenMaxConnectionCountTooSmall(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	con := listeners.RPCConfiguration{
		MaximumConnections: 0,
		Listen:             []string{"127.0.0.1:2130"},
	}

	count := counter.Counter{}

	_, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		nil,
		server.Namespaces,
		policy.NewHolder(policy.Safe),
		&tls.Config{},
	)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}

func TestRpcListenerWhenEmptyListen(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	con := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{},
	}

	count := counter.Counter{}

	_, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		nil,
		server.Namespaces,
		policy.NewHolder(policy.Safe),
		&tls.Config{},
	)
	assert.Equal(t, fault.MissingParameters, err, "wrong error")
}

func TestRpcListenerWhenInvalidListen(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	con := listeners.RPCConfiguration{
		MaximumConnections: 1,
		Listen:             []string{"localhost:2130"},
	}

	count := counter.Counter{}

	_, err := listeners.NewRPC(
		&con,
		logger.New(fixtures.LogCategory),
		&count,
		nil,
		server.Namespaces,
		policy.NewHolder(policy.Safe),
		&tls.Config{},
	)
	assert.Equal(t, fault.InvalidIpAddress, err, "wrong error")
}

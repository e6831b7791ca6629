// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/rpc/datastorage"
)

// Set - store a value under key
func (client *Client) Set(key []byte, value []byte) error {
	args := datastorage.SetArguments{
		Key:   key,
		Value: value,
	}

	if err := client.printJson("Set Request", args); nil != err {
		return err
	}

	var reply datastorage.SetReply
	return client.client.Call("DataStorage.Set", &args, &reply)
}

// Get - fetch the value stored under key
func (client *Client) Get(key []byte) ([]byte, bool, error) {
	args := datastorage.GetArguments{
		Key: key,
	}

	if err := client.printJson("Get Request", args); nil != err {
		return nil, false, err
	}

	var reply datastorage.GetReply
	if err := client.client.Call("DataStorage.Get", &args, &reply); nil != err {
		return nil, false, err
	}

	if nil == reply.Value {
		return nil, false, nil
	}
	return *reply.Value, true, nil
}

// Remove - not available over RPC
func (client *Client) Remove(key []byte) error {
	return fault.NotSupported
}

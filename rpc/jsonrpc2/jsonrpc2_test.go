// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package jsonrpc2_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/rpc"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/rpc/jsonrpc2"
)

var namespaces = jsonrpc2.Namespaces{
	"arith": "Arith",
}

type Arith struct{}

type AddArguments struct {
	A int `json:"a"`
	B int `json:"b"`
}

// accept both {"a":1,"b":2} and [1,2]
func (args *AddArguments) UnmarshalJSON(b []byte) error {
	if '[' == b[0] {
		var positional []int
		if err := json.Unmarshal(b, &positional); nil != err {
			return err
		}
		if 2 != len(positional) {
			return fault.MissingParameters
		}
		args.A = positional[0]
		args.B = positional[1]
		return nil
	}
	type plain AddArguments
	return json.Unmarshal(b, (*plain)(args))
}

func (Arith) Add(args *AddArguments, reply *int) error {
	*reply = args.A + args.B
	return nil
}

func (Arith) Unsafe(args *AddArguments, reply *int) error {
	return fault.UnsafeRpcCalled
}

type bufferConn struct {
	io.Reader
	io.Writer
}

func (bufferConn) Close() error { return nil }

type response struct {
	Version string           `json:"jsonrpc"`
	Id      *json.RawMessage `json:"id"`
	Result  *json.RawMessage `json:"result"`
	Error   *jsonrpc2.Error  `json:"error"`
}

// run requests through a server and return the responses by id
func serve(t *testing.T, requests string) (map[string]response, []response) {
	server := rpc.NewServer()
	assert.Nil(t, server.Register(Arith{}), "register error")

	out := &bytes.Buffer{}
	conn := bufferConn{
		Reader: strings.NewReader(requests),
		Writer: out,
	}
	server.ServeCodec(jsonrpc2.NewServerCodec(conn, namespaces))

	byId := make(map[string]response)
	all := []response{}
	dec := json.NewDecoder(out)
	for {
		var r response
		if err := dec.Decode(&r); nil != err {
			break
		}
		assert.Equal(t, "2.0", r.Version, "version")
		all = append(all, r)
		if nil != r.Id {
			byId[string(*r.Id)] = r
		}
	}
	return byId, all
}

func TestNamedAndPositional(t *testing.T) {
	responses, all := serve(t, `
{"jsonrpc":"2.0","method":"arith_add","params":{"a":2,"b":5},"id":1}
{"jsonrpc":"2.0","method":"arith_add","params":[3,4],"id":"two"}
{"jsonrpc":"2.0","method":"arith_add","params":[{"a":1,"b":1}],"id":3}
{"jsonrpc":"2.0","method":"Arith.Add","params":{"a":10,"b":1},"id":4}
`)
	assert.Equal(t, 4, len(all), "response count")

	expected := map[string]string{
		`1`:     `7`,
		`"two"`: `7`,
		`3`:     `2`,
		`4`:     `11`,
	}
	for id, result := range expected {
		r, ok := responses[id]
		assert.True(t, ok, "missing id: %s", id)
		assert.Nil(t, r.Error, "id: %s error", id)
		assert.Equal(t, result, string(*r.Result), "id: %s result", id)
	}
}

func TestErrors(t *testing.T) {
	responses, _ := serve(t, `
{"jsonrpc":"2.0","method":"arith_unsafe","params":{"a":2,"b":5},"id":1}
{"jsonrpc":"2.0","method":"arith_multiply","params":{"a":2,"b":5},"id":2}
{"jsonrpc":"2.0","method":"nothing_here","params":{},"id":3}
{"jsonrpc":"2.0","method":"arith_add","params":[1],"id":4}
{"jsonrpc":"2.0","method":"arith_add","params":{"a":"x"},"id":5}
{"jsonrpc":"1.0","method":"arith_add","params":{"a":1,"b":1},"id":6}
{"jsonrpc":"2.0","method":42,"id":7}
`)

	codes := map[string]int{
		`1`: fault.BaseCode + 1,
		`2`: fault.CodeMethodNotFound,
		`3`: fault.CodeMethodNotFound,
		`4`: fault.CodeInvalidParams,
		`5`: fault.CodeInvalidParams,
		`6`: fault.CodeInvalidRequest,
		`7`: fault.CodeInvalidRequest,
	}
	for id, code := range codes {
		r, ok := responses[id]
		assert.True(t, ok, "missing id: %s", id)
		if !ok {
			continue
		}
		assert.Nil(t, r.Result, "id: %s has result", id)
		if assert.NotNil(t, r.Error, "id: %s no error", id) {
			assert.Equal(t, code, r.Error.Code, "id: %s code", id)
		}
	}
	assert.Equal(t, fault.UnsafeRpcCalled.Error(), responses[`1`].Error.Message, "unsafe message")
}

func TestNotification(t *testing.T) {
	_, all := serve(t, `
{"jsonrpc":"2.0","method":"arith_add","params":{"a":2,"b":5}}
{"jsonrpc":"2.0","method":"arith_add","params":{"a":1,"b":1},"id":9}
`)
	assert.Equal(t, 1, len(all), "notification answered")
	assert.Equal(t, "9", string(*all[0].Id), "wrong id")
}

func TestParseError(t *testing.T) {
	_, all := serve(t, `{"jsonrpc":"2.0","method":`+"\n}")
	if assert.Equal(t, 1, len(all), "response count") {
		assert.Equal(t, "null", string(*all[0].Id), "id")
		assert.Equal(t, fault.CodeParseError, all[0].Error.Code, "code")
	}
}

func TestClient(t *testing.T) {
	server := rpc.NewServer()
	assert.Nil(t, server.Register(Arith{}), "register error")

	serverConn, clientConn := net.Pipe()
	go server.ServeCodec(jsonrpc2.NewServerCodec(serverConn, namespaces))

	client := jsonrpc2.NewClient(clientConn, namespaces)
	defer client.Close()

	var reply int
	err := client.Call("Arith.Add", &AddArguments{A: 20, B: 22}, &reply)
	assert.Nil(t, err, "call error")
	assert.Equal(t, 42, reply, "wrong result")

	err = client.Call("Arith.Unsafe", &AddArguments{}, &reply)
	assert.Equal(t, rpc.ServerError(fault.UnsafeRpcCalled.Error()), err, "wrong error")

	// connection still usable after an error
	err = client.Call("Arith.Add", &AddArguments{A: 1, B: 2}, &reply)
	assert.Nil(t, err, "call error")
	assert.Equal(t, 3, reply, "wrong result")
}

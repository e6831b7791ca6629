// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/rpc"
	"sync"
)

type clientCodec struct {
	dec        *json.Decoder
	enc        *json.Encoder
	c          io.Closer
	namespaces Namespaces

	// temporary work space
	resp clientResponse

	sync.Mutex // protects pending
	pending    map[uint64]string
}

// NewClientCodec - a JSON-RPC 2.0 rpc.ClientCodec over conn
func NewClientCodec(conn io.ReadWriteCloser, namespaces Namespaces) rpc.ClientCodec {
	return &clientCodec{
		dec:        json.NewDecoder(conn),
		enc:        json.NewEncoder(conn),
		c:          conn,
		namespaces: namespaces,
		pending:    make(map[uint64]string),
	}
}

// NewClient - an rpc.Client using NewClientCodec
func NewClient(conn io.ReadWriteCloser, namespaces Namespaces) *rpc.Client {
	return rpc.NewClientWithCodec(NewClientCodec(conn, namespaces))
}

func (c *clientCodec) WriteRequest(r *rpc.Request, param interface{}) error {
	c.Lock()
	c.pending[r.Seq] = r.ServiceMethod
	c.Unlock()

	return c.enc.Encode(clientRequest{
		Version: Version,
		Method:  c.namespaces.wireMethod(r.ServiceMethod),
		Params:  param,
		Id:      r.Seq,
	})
}

func (c *clientCodec) ReadResponseHeader(r *rpc.Response) error {
	c.resp = clientResponse{}
	if err := c.dec.Decode(&c.resp); nil != err {
		return err
	}

	// a response to a request that could not be parsed has a null id
	if nil == c.resp.Id {
		if nil != c.resp.Error {
			return fmt.Errorf("server error: %d: %s", c.resp.Error.Code, c.resp.Error.Message)
		}
		return errors.New("response without id")
	}

	c.Lock()
	r.Seq = *c.resp.Id
	r.ServiceMethod = c.pending[r.Seq]
	delete(c.pending, r.Seq)
	c.Unlock()

	r.Error = ""
	if nil != c.resp.Error {
		r.Error = c.resp.Error.Message
		if "" == r.Error {
			r.Error = fmt.Sprintf("error code: %d", c.resp.Error.Code)
		}
	}
	return nil
}

func (c *clientCodec) ReadResponseBody(x interface{}) error {
	if nil == x || 0 == len(c.resp.Result) {
		return nil
	}
	return json.Unmarshal(c.resp.Result, x)
}

func (c *clientCodec) Close() error {
	return c.c.Close()
}

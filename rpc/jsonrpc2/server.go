// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/rpc"
	"sync"

	"github.com/canyon-network/canyond/fault"
)

type pendingRequest struct {
	id   json.RawMessage
	code int // non-zero if the request was rejected before dispatch
}

type serverCodec struct {
	dec        *json.Decoder
	enc        *json.Encoder
	c          io.Closer
	namespaces Namespaces

	// temporary work space
	req serverRequest

	sync.Mutex // protects seq and pending
	seq        uint64
	pending    map[uint64]pendingRequest

	encMutex sync.Mutex
}

// NewServerCodec - a JSON-RPC 2.0 rpc.ServerCodec over conn
func NewServerCodec(conn io.ReadWriteCloser, namespaces Namespaces) rpc.ServerCodec {
	return &serverCodec{
		dec:        json.NewDecoder(conn),
		enc:        json.NewEncoder(conn),
		c:          conn,
		namespaces: namespaces,
		pending:    make(map[uint64]pendingRequest),
	}
}

func (c *serverCodec) ReadRequestHeader(r *rpc.Request) error {
	c.req = serverRequest{}

	code := 0
	err := c.dec.Decode(&c.req)
	if nil != err {
		var typeError *json.UnmarshalTypeError
		if !errors.As(err, &typeError) {
			if io.EOF != err {
				// the stream cannot be resynchronised
				c.write(errorResponse{
					Version: Version,
					Id:      nullId,
					Error: &Error{
						Code:    fault.CodeParseError,
						Message: "parse error: " + err.Error(),
					},
				})
			}
			return err
		}
		code = fault.CodeInvalidRequest
	}

	if Version != c.req.Version || "" == c.req.Method {
		code = fault.CodeInvalidRequest
	}

	r.ServiceMethod = ""
	if 0 == code {
		r.ServiceMethod = c.namespaces.serviceMethod(c.req.Method)
	}

	id := c.req.Id
	if 0 != code && 0 == len(id) {
		id = nullId // invalid requests are always answered
	}

	c.Lock()
	c.seq += 1
	c.pending[c.seq] = pendingRequest{
		id:   id,
		code: code,
	}
	r.Seq = c.seq
	c.Unlock()

	return nil
}

func (c *serverCodec) ReadRequestBody(x interface{}) error {
	if nil == x {
		return nil
	}

	params := bytes.TrimSpace(c.req.Params)
	if 0 == len(params) || bytes.Equal(params, nullId) {
		return nil
	}

	// accept [ { ... } ] as used by net/rpc/jsonrpc clients
	if '[' == params[0] {
		var array []json.RawMessage
		if err := json.Unmarshal(params, &array); nil == err && 1 == len(array) {
			single := bytes.TrimSpace(array[0])
			if len(single) > 0 && '{' == single[0] {
				params = single
			}
		}
	}

	err := json.Unmarshal(params, x)
	if nil == err {
		return nil
	}
	if fault.IsErrInvalid(err) {
		return err
	}
	return fmt.Errorf("%w: %s", fault.InvalidParameters, err)
}

func (c *serverCodec) WriteResponse(r *rpc.Response, x interface{}) error {
	c.Lock()
	p, ok := c.pending[r.Seq]
	if !ok {
		c.Unlock()
		return errors.New("invalid sequence number in response")
	}
	delete(c.pending, r.Seq)
	c.Unlock()

	// notification
	if 0 == len(p.id) {
		return nil
	}

	if "" == r.Error {
		return c.write(successResponse{
			Version: Version,
			Id:      p.id,
			Result:  x,
		})
	}

	code := p.code
	message := r.Error
	if 0 == code {
		code = codeForMessage(r.Error)
	} else {
		message = "invalid request"
	}
	return c.write(errorResponse{
		Version: Version,
		Id:      p.id,
		Error: &Error{
			Code:    code,
			Message: message,
		},
	})
}

func (c *serverCodec) write(response interface{}) error {
	c.encMutex.Lock()
	defer c.encMutex.Unlock()
	return c.enc.Encode(response)
}

func (c *serverCodec) Close() error {
	return c.c.Close()
}

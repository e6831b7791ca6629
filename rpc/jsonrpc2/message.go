// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package jsonrpc2

import (
	"encoding/json"
	"strings"

	"github.com/canyon-network/canyond/fault"
)

// Version - the protocol version field value
const Version = "2.0"

// Error - the error member of a response
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Error - the error interface
func (e *Error) Error() string {
	return e.Message
}

type serverRequest struct {
	Version string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params"`
	Id      json.RawMessage `json:"id"`
}

type successResponse struct {
	Version string          `json:"jsonrpc"`
	Id      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result"`
}

type errorResponse struct {
	Version string          `json:"jsonrpc"`
	Id      json.RawMessage `json:"id"`
	Error   *Error          `json:"error"`
}

type clientRequest struct {
	Version string      `json:"jsonrpc"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params"`
	Id      uint64      `json:"id"`
}

type clientResponse struct {
	Version string          `json:"jsonrpc"`
	Id      *uint64         `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

var nullId = json.RawMessage("null")

// error text produced by net/rpc for unknown methods
var methodNotFoundPrefixes = []string{
	"rpc: can't find service",
	"rpc: can't find method",
	"rpc: service/method request ill-formed",
}

// codeForMessage - the JSON-RPC error code for a net/rpc error text
func codeForMessage(message string) int {
	for _, prefix := range methodNotFoundPrefixes {
		if strings.HasPrefix(message, prefix) {
			return fault.CodeMethodNotFound
		}
	}
	return fault.CodeForMessage(message)
}

// Namespaces - map wire namespace to net/rpc service name
type Namespaces map[string]string

// serviceMethod - "datastorage_Set" -> "DataStorage.Set"
//
// names already in Service.Method form and unknown namespaces are
// passed through unchanged
func (n Namespaces) serviceMethod(method string) string {
	i := strings.Index(method, "_")
	if i <= 0 || i == len(method)-1 {
		return method
	}
	service, ok := n[method[:i]]
	if !ok {
		return method
	}
	name := method[i+1:]
	return service + "." + strings.ToUpper(name[:1]) + name[1:]
}

// wireMethod - "DataStorage.Set" -> "datastorage_Set"
func (n Namespaces) wireMethod(serviceMethod string) string {
	i := strings.LastIndex(serviceMethod, ".")
	if i <= 0 {
		return serviceMethod
	}
	service := serviceMethod[:i]
	for namespace, s := range n {
		if s == service {
			return namespace + "_" + serviceMethod[i+1:]
		}
	}
	return serviceMethod
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
	"strings"
)

// BaseCode - base error code for all data storage RPC errors
const BaseCode = 5000

// JSON-RPC 2.0 reserved codes
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// codes for errors that cross the RPC boundary
var rpcCodes = []struct {
	err  error
	code int
}{
	{UnsafeRpcCalled, BaseCode + 1},
	{StorageCommitFailed, BaseCode + 2},
	{StorageReadFailed, BaseCode + 3},
	{RateLimiting, BaseCode + 4},
	{InvalidHexBytes, CodeInvalidParams},
	{InvalidParameters, CodeInvalidParams},
	{MissingParameters, CodeInvalidParams},
	{InvalidChunkIndex, CodeInvalidParams},
}

// Code - the JSON-RPC error code for an error
//
// any error not listed above is reported as BaseCode
func Code(err error) int {
	for _, c := range rpcCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return BaseCode
}

// CodeForMessage - recover a code from an error message
//
// net/rpc only passes the error text to a server codec, so the codec
// matches the text against the known instances, a wrapped error
// starts with the text of the instance it wraps
func CodeForMessage(message string) int {
	for _, c := range rpcCodes {
		if strings.HasPrefix(message, c.err.Error()) {
			return c.code
		}
	}
	return BaseCode
}

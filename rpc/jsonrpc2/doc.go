// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package jsonrpc2 - JSON-RPC 2.0 codecs for net/rpc
//
// Methods are named namespace_Method on the wire and are mapped to
// the net/rpc Service.Method form using a namespace table, e.g.
//
//   datastorage_Set  <->  DataStorage.Set
//
// Params may be an object, an array of positional values or an array
// holding a single object.  Requests without an id are notifications
// and get no response.
package jsonrpc2

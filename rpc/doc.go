// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpc - setup and handle all of the incoming JSON-RPC 2.0
// requests from clients requiring canyond data storage services
//
// two transports are provided: a TLS stream listener and HTTPS POST
// requests. Each connection has its own set of services which see
// the unsafe RPC policy resolved for that connection
package rpc

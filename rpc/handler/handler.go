// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/rpc"
	"time"

	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/constants"
	"github.com/canyon-network/canyond/counter"
	"github.com/canyon-network/canyond/rpc/jsonrpc2"
	"github.com/canyon-network/canyond/rpc/policy"
)

// room for a hex encoded maximum payload plus its key and the envelope
const (
	maximumRequestBytes = 2*constants.MaximumDataPayload + 64*1024
)

// ServerFactory - creates the RPC server for one connection
type ServerFactory interface {
	Create(p policy.Policy, remoteAddress string) *rpc.Server
}

// Handler - HTTPS routes
type Handler interface {
	RPC(http.ResponseWriter, *http.Request)
	Details(http.ResponseWriter, *http.Request)
	Root(http.ResponseWriter, *http.Request)
}

type handler struct {
	log                *logger.L
	factory            ServerFactory
	namespaces         jsonrpc2.Namespaces
	holder             *policy.Holder
	start              time.Time
	version            string
	count              counter.Counter
	maximumConnections uint64
}

// New - create the HTTPS handler
func New(
	log *logger.L,
	factory ServerFactory,
	namespaces jsonrpc2.Namespaces,
	holder *policy.Holder,
	start time.Time,
	version string,
	maximumConnections uint64,
) Handler {
	return &handler{
		log:                log,
		factory:            factory,
		namespaces:         namespaces,
		holder:             holder,
		start:              start,
		version:            version,
		maximumConnections: maximumConnections,
	}
}

// InternalConnection - type to allow RPC over HTTP
type InternalConnection struct {
	in  io.Reader
	out io.Writer
}

// Read - implement the io.Reader part of the connection
func (c InternalConnection) Read(p []byte) (n int, err error) {
	return c.in.Read(p)
}

// Write - implement the io.Writer part of the connection
func (c InternalConnection) Write(d []byte) (n int, err error) {
	return c.out.Write(d)
}

// Close - implement the io.Closer part of the connection
func (c InternalConnection) Close() error {
	return nil
}

// RPC - handle one JSON-RPC 2.0 request
func (h *handler) RPC(w http.ResponseWriter, r *http.Request) {
	if http.MethodPost != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	if !h.count.TryIncrement(h.maximumConnections) {
		sendTooManyRequests(w)
		return
	}
	defer h.count.Decrement()

	server := h.factory.Create(h.holder.Get(), r.RemoteAddr)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")

	conn := InternalConnection{
		in:  http.MaxBytesReader(w, r.Body, maximumRequestBytes),
		out: w,
	}
	err := server.ServeRequest(jsonrpc2.NewServerCodec(conn, h.namespaces))
	if nil != err && io.EOF != err {
		h.log.Errorf("%s: serve error: %s", r.RemoteAddr, err)
	}
}

type detailsReply struct {
	Version     string `json:"version"`
	Uptime      string `json:"uptime"`
	Policy      string `json:"policy"`
	Connections uint64 `json:"connections"`
}

// Details - node status, no policy restriction
func (h *handler) Details(w http.ResponseWriter, r *http.Request) {
	if http.MethodGet != r.Method {
		sendMethodNotAllowed(w)
		return
	}

	reply := detailsReply{
		Version:     h.version,
		Uptime:      time.Since(h.start).String(),
		Policy:      h.holder.Get().String(),
		Connections: h.count.Uint64(),
	}
	sendReply(w, http.StatusOK, &reply)
}

// Root - anything not matched by another route
func (h *handler) Root(w http.ResponseWriter, _ *http.Request) {
	sendNotFound(w)
}

type errorReply struct {
	Code  int    `json:"code"`
	Error string `json:"error"`
}

func sendReply(w http.ResponseWriter, status int, reply interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(reply)
}

func sendError(w http.ResponseWriter, status int, message string) {
	sendReply(w, status, &errorReply{Code: status, Error: message})
}

func sendMethodNotAllowed(w http.ResponseWriter) {
	sendError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func sendTooManyRequests(w http.ResponseWriter) {
	sendError(w, http.StatusTooManyRequests, http.StatusText(http.StatusTooManyRequests))
}

func sendNotFound(w http.ResponseWriter) {
	sendError(w, http.StatusNotFound, "not found")
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

import (
	"crypto/tls"
	"net"
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/counter"
	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/rpc/handler"
	"github.com/canyon-network/canyond/rpc/jsonrpc2"
	"github.com/canyon-network/canyond/rpc/policy"
	"github.com/canyon-network/canyond/util"
)

const (
	logName            = "client_rpc"
	minConnectionCount = 1
)

// RPCConfiguration - configuration file data for RPC setup
type RPCConfiguration struct {
	MaximumConnections uint64   `gluamapper:"maximum_connections" json:"maximum_connections"`
	Listen             []string `gluamapper:"listen" json:"listen"`
	Certificate        string   `gluamapper:"certificate" json:"certificate"`
	PrivateKey         string   `gluamapper:"private_key" json:"private_key"`
	Unsafe             string   `gluamapper:"unsafe" json:"unsafe"`
}

type rpcListener struct {
	sync.Mutex
	log            *logger.L
	count          *counter.Counter
	factory        handler.ServerFactory
	namespaces     jsonrpc2.Namespaces
	holder         *policy.Holder
	maxConnections uint64
	tlsConfig      *tls.Config
	addresses      []address
	listeners      []net.Listener
}

// NewRPC - TLS listener with one JSON-RPC 2.0 stream per connection
//
// the policy in holder is resolved for each new connection
func NewRPC(
	configuration *RPCConfiguration,
	log *logger.L,
	count *counter.Counter,
	factory handler.ServerFactory,
	namespaces jsonrpc2.Namespaces,
	holder *policy.Holder,
	tlsConfig *tls.Config,
) (Listener, error) {
	if configuration.MaximumConnections < minConnectionCount {
		log.Errorf("invalid %s maximum connection limit: %d", logName, configuration.MaximumConnections)
		return nil, fault.MissingParameters
	}

	if 0 == len(configuration.Listen) {
		log.Errorf("missing %s listen", logName)
		return nil, fault.MissingParameters
	}

	addresses, err := parseListenAddresses(configuration.Listen, log)
	if nil != err {
		return nil, err
	}

	r := &rpcListener{
		log:            log,
		count:          count,
		factory:        factory,
		namespaces:     namespaces,
		holder:         holder,
		maxConnections: configuration.MaximumConnections,
		tlsConfig:      tlsConfig,
		addresses:      addresses,
	}
	return r, nil
}

func (r *rpcListener) Serve() error {
	r.Lock()
	defer r.Unlock()

	for _, a := range r.addresses {
		r.log.Infof("starting RPC server: %s", a.address)
		l, err := tls.Listen(a.network, a.address, r.tlsConfig)
		if err != nil {
			r.log.Errorf("rpc server listen error: %s", err)
			return err
		}
		r.listeners = append(r.listeners, l)

		go r.accept(l)
	}
	return nil
}

func (r *rpcListener) Close() error {
	r.Lock()
	defer r.Unlock()

	var firstErr error
	for _, l := range r.listeners {
		if err := l.Close(); nil != err && nil == firstErr {
			firstErr = err
		}
	}
	r.listeners = nil
	return firstErr
}

func (r *rpcListener) accept(listen net.Listener) {
	for {
		conn, err := listen.Accept()
		if err != nil {
			r.log.Infof("rpc accept terminated: %s", err)
			break
		}
		if !r.count.TryIncrement(r.maxConnections) {
			r.log.Warnf("connection limit reached, reject: %s", conn.RemoteAddr())
			_ = conn.Close()
			continue
		}
		go r.serve(conn)
	}
}

func (r *rpcListener) serve(conn net.Conn) {
	defer r.count.Decrement()

	remote := conn.RemoteAddr().String()
	p := r.holder.Get()
	r.log.Debugf("connection from: %s  policy: %s", remote, p)

	server := r.factory.Create(p, remote)
	server.ServeCodec(jsonrpc2.NewServerCodec(conn, r.namespaces))
}

func parseListenAddresses(listen []string, log *logger.L) ([]address, error) {
	addresses := make([]address, 0, len(listen))
	for _, l := range listen {
		network, a, err := util.ParseListen(l)
		if nil != err {
			log.Errorf("rpc server listen: %q  error: %s", l, err)
			return nil, err
		}
		addresses = append(addresses, address{network: network, address: a})
	}
	return addresses, nil
}

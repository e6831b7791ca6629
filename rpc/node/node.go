// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package node

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/counter"
	"github.com/canyon-network/canyond/rpc/policy"
	"github.com/canyon-network/canyond/rpc/ratelimit"
)

const (
	rateLimitNode = 200
	rateBurstNode = 100
)

// Node - type for RPC calls
type Node struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Start   time.Time
	Version string
	Policy  policy.Policy
	Deny    policy.DenyUnsafe
	counter *counter.Counter
}

// NewLimiter - limiter shared by all connections
func NewLimiter() *rate.Limiter {
	return rate.NewLimiter(rateLimitNode, rateBurstNode)
}

// New - service for one connection
func New(log *logger.L, limiter *rate.Limiter, start time.Time, version string, counter *counter.Counter, p policy.Policy, deny policy.DenyUnsafe) *Node {
	return &Node{
		Log:     log,
		Limiter: limiter,
		Start:   start,
		Version: version,
		Policy:  p,
		Deny:    deny,
		counter: counter,
	}
}

// InfoArguments - empty arguments for info request
type InfoArguments struct{}

// InfoReply - results from info request
type InfoReply struct {
	Version    string `json:"version"`
	Uptime     string `json:"uptime"`
	Policy     string `json:"policy"`
	DenyUnsafe bool   `json:"denyUnsafe"`
	RPCs       uint64 `json:"rpcs"`
}

// Info - return some information about this node
func (node *Node) Info(_ *InfoArguments, reply *InfoReply) error {

	if err := ratelimit.Limit(node.Limiter); nil != err {
		return err
	}

	reply.Version = node.Version
	reply.Uptime = time.Since(node.Start).String()
	reply.Policy = node.Policy.String()
	reply.DenyUnsafe = bool(node.Deny)
	reply.RPCs = node.counter.Uint64()
	return nil
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package policy - gate for RPC calls that are unsafe to expose
//
// The configured policy is resolved against the remote address of
// each connection, giving a DenyUnsafe value that every unsafe call
// checks before doing anything else.
package policy

import (
	"strings"
	"sync/atomic"

	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/util"
)

// Policy - the configured treatment of unsafe calls
type Policy string

// the possible policies
const (
	Safe   = Policy("safe")   // deny unsafe calls
	Unsafe = Policy("unsafe") // allow unsafe calls from anywhere
	Local  = Policy("local")  // allow unsafe calls over loopback only
)

// Parse - convert configuration text to a policy
//
// an empty string gives Local
func Parse(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return Local, nil
	case Safe, Unsafe, Local:
		return p, nil
	default:
		return "", fault.InvalidPolicy
	}
}

// String - policy name
func (p Policy) String() string {
	return string(p)
}

// Resolve - the gate for one connection
//
// anything other than Unsafe or Local with a loopback peer denies
func (p Policy) Resolve(remoteAddress string) DenyUnsafe {
	switch p {
	case Unsafe:
		return DenyUnsafe(false)
	case Local:
		return DenyUnsafe(!util.IsLoopback(remoteAddress))
	default:
		return DenyUnsafe(true)
	}
}

// DenyUnsafe - the resolved gate, true if unsafe calls are refused
type DenyUnsafe bool

// CheckIfSafe - error if unsafe calls are denied
func (d DenyUnsafe) CheckIfSafe() error {
	if d {
		return fault.UnsafeRpcCalled
	}
	return nil
}

// Holder - a policy that can be replaced while connections are live
//
// connections resolve the current value when they are accepted
type Holder struct {
	v atomic.Value
}

// NewHolder - holder with an initial policy
func NewHolder(p Policy) *Holder {
	h := &Holder{}
	h.v.Store(p)
	return h
}

// Get - current policy
func (h *Holder) Get() Policy {
	return h.v.Load().(Policy)
}

// Set - replace the policy, returns the previous one
func (h *Holder) Set(p Policy) Policy {
	previous := h.Get()
	h.v.Store(p)
	return previous
}

// Resolve - resolve the current policy for a remote address
func (h *Holder) Resolve(remoteAddress string) DenyUnsafe {
	return h.Get().Resolve(remoteAddress)
}

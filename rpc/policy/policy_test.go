// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/canyon-network/canyond/fault"
	"github.com/canyon-network/canyond/rpc/policy"
)

func TestParse(t *testing.T) {
	items := []struct {
		text     string
		expected policy.Policy
	}{
		{"", policy.Local},
		{"safe", policy.Safe},
		{"UNSAFE", policy.Unsafe},
		{" local ", policy.Local},
	}
	for _, item := range items {
		p, err := policy.Parse(item.text)
		assert.Nil(t, err, "%q", item.text)
		assert.Equal(t, item.expected, p, "%q", item.text)
	}

	_, err := policy.Parse("sometimes")
	assert.Equal(t, fault.InvalidPolicy, err, "invalid policy accepted")
}

func TestResolve(t *testing.T) {
	items := []struct {
		p      policy.Policy
		remote string
		deny   bool
	}{
		{policy.Safe, "127.0.0.1:1234", true},
		{policy.Safe, "192.168.1.2:1234", true},
		{policy.Unsafe, "127.0.0.1:1234", false},
		{policy.Unsafe, "203.0.113.9:1234", false},
		{policy.Local, "127.0.0.1:1234", false},
		{policy.Local, "[::1]:1234", false},
		{policy.Local, "192.168.1.2:1234", true},
		{policy.Local, "[2001:db8::1]:1234", true},
		{policy.Local, "not an address", true},
		{policy.Policy("bogus"), "127.0.0.1:1234", true},
	}
	for i, item := range items {
		d := item.p.Resolve(item.remote)
		assert.Equal(t, policy.DenyUnsafe(item.deny), d, "%d: %s from %s", i, item.p, item.remote)
		if item.deny {
			assert.Equal(t, fault.UnsafeRpcCalled, d.CheckIfSafe(), "%d: check", i)
		} else {
			assert.Nil(t, d.CheckIfSafe(), "%d: check", i)
		}
	}
}

func TestHolder(t *testing.T) {
	h := policy.NewHolder(policy.Safe)
	assert.Equal(t, policy.Safe, h.Get(), "initial")
	assert.Equal(t, policy.DenyUnsafe(true), h.Resolve("127.0.0.1:1"), "safe on loopback")

	previous := h.Set(policy.Local)
	assert.Equal(t, policy.Safe, previous, "previous")
	assert.Equal(t, policy.DenyUnsafe(false), h.Resolve("127.0.0.1:1"), "local on loopback")
	assert.Equal(t, policy.DenyUnsafe(true), h.Resolve("10.0.0.1:1"), "local remote")
}

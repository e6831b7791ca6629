// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ratelimit

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/canyon-network/canyond/fault"
)

// Limit - wait for one token
func Limit(limiter *rate.Limiter) error {
	return LimitN(limiter, 1, 1)
}

// LimitN - wait for weight tokens
//
// weight is clamped to the range 1..maximumWeight so a call always
// costs something and never more than maximumWeight
func LimitN(limiter *rate.Limiter, weight int, maximumWeight int) error {
	if weight > maximumWeight {
		weight = maximumWeight
	}
	if weight < 1 {
		weight = 1
	}

	r := limiter.ReserveN(time.Now(), weight)
	if !r.OK() {
		return fault.RateLimiting
	}
	time.Sleep(r.Delay())
	return nil
}

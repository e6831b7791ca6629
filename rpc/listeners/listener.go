// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package listeners

// Listener - a started transport
type Listener interface {
	Serve() error
	Close() error
}

type address struct {
	network string
	address string
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/canyon-network/canyond/rpc/node"
)

// GetInfo - request status from canyond
func (client *Client) GetInfo() (*node.InfoReply, error) {
	var reply node.InfoReply
	if err := client.client.Call("Node.Info", &node.InfoArguments{}, &reply); err != nil {
		return nil, err
	}

	return &reply, nil
}

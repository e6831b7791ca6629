// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli"

	"github.com/canyon-network/canyond/merkle"
	"github.com/canyon-network/canyond/rpc/datastorage"
	"github.com/canyon-network/canyond/transactiondata"
)

// parseBytes - 0x prefixed text is hex, anything else is used as is
func parseBytes(s string) ([]byte, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		var b datastorage.Bytes
		if err := b.UnmarshalText([]byte(s)); nil != err {
			return nil, err
		}
		return b, nil
	}
	return []byte(s), nil
}

// commitmentFromFlags - the commitment given by --root and --size
func commitmentFromFlags(c *cli.Context) (transactiondata.DataInfo, error) {
	root := c.String("root")
	if "" == root {
		return transactiondata.DataInfo{}, fmt.Errorf("chunk root is required")
	}
	if !c.IsSet("size") {
		return transactiondata.DataInfo{}, fmt.Errorf("payload size is required")
	}

	var digest merkle.Digest
	if err := digest.UnmarshalText([]byte(root)); nil != err {
		return transactiondata.DataInfo{}, err
	}

	return transactiondata.DataInfo{
		Size:      c.Uint64("size"),
		ChunkRoot: digest,
	}, nil
}

func printJson(w io.Writer, message interface{}) {
	b, err := json.MarshalIndent(message, "", "  ")
	if nil != err {
		fmt.Fprintf(w, "JSON error: %s\n", err)
		return
	}
	fmt.Fprintf(w, "%s\n", b)
}

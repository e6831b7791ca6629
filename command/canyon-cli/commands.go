// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/urfave/cli"

	"github.com/canyon-network/canyond/command/canyon-cli/rpccalls"
	"github.com/canyon-network/canyond/merkle"
	"github.com/canyon-network/canyond/rpc/datastorage"
	"github.com/canyon-network/canyond/transactiondata"
)

type commitReply struct {
	transactiondata.DataInfo
	Chunks int    `json:"chunks"`
	Packed string `json:"packed"`
}

type proveReply struct {
	Index int             `json:"index"`
	Chunk int             `json:"chunkLength"`
	Root  merkle.Digest   `json:"chunkRoot"`
	Proof []merkle.Digest `json:"proof"`
	Valid bool            `json:"valid"`
}

func runCommit(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	data, err := readPayload(c)
	if nil != err {
		return err
	}

	printJson(m.w, newCommitReply(data.Info))
	return nil
}

func runVerify(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	info, err := commitmentFromFlags(c)
	if nil != err {
		return err
	}

	data, err := readPayload(c)
	if nil != err {
		return err
	}

	// compare against the given commitment, not the computed one
	data.Info = info
	if err := transactiondata.Check(data); nil != err {
		return err
	}

	if m.verbose {
		fmt.Fprintf(m.e, "payload matches root: %s  size: %d\n", info.ChunkRoot, info.Size)
	}
	fmt.Fprintf(m.w, "ok\n")
	return nil
}

func runProve(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	data, err := readPayload(c)
	if nil != err {
		return err
	}

	index := c.Int("index")
	chunk, proof, err := data.ChunkProof(index)
	if nil != err {
		return err
	}

	reply := proveReply{
		Index: index,
		Chunk: len(chunk),
		Root:  data.Info.ChunkRoot,
		Proof: proof,
		Valid: nil == transactiondata.VerifyChunk(data.Info, index, chunk, proof),
	}
	printJson(m.w, reply)
	return nil
}

func runSet(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if 2 != c.NArg() {
		return fmt.Errorf("set requires KEY and VALUE")
	}
	key, err := parseBytes(c.Args().Get(0))
	if nil != err {
		return err
	}
	value, err := parseBytes(c.Args().Get(1))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	if err := client.Set(key, value); nil != err {
		return err
	}
	fmt.Fprintf(m.w, "ok\n")
	return nil
}

func runGet(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	if 1 != c.NArg() {
		return fmt.Errorf("get requires KEY")
	}
	key, err := parseBytes(c.Args().Get(0))
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	value, found, err := client.Get(key)
	if nil != err {
		return err
	}
	if !found {
		fmt.Fprintf(m.w, "null\n")
		return nil
	}
	fmt.Fprintf(m.w, "%s\n", datastorage.Bytes(value))
	return nil
}

func runRetain(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	data, err := readPayload(c)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	if err := transactiondata.Retain(client, data); nil != err {
		return err
	}

	printJson(m.w, newCommitReply(data.Info))
	return nil
}

func runFetch(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	info, err := commitmentFromFlags(c)
	if nil != err {
		return err
	}

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	data, err := transactiondata.Load(client, info)
	if nil != err {
		return err
	}

	output := c.String("output")
	if "" == output || "-" == output {
		_, err = m.w.Write(data.Payload.Bytes())
		return err
	}
	return ioutil.WriteFile(output, data.Payload.Bytes(), 0o644)
}

func runInfo(c *cli.Context) error {
	m := c.App.Metadata["config"].(*metadata)

	client, err := rpccalls.NewClient(m.connect, m.verbose, m.e)
	if nil != err {
		return err
	}
	defer client.Close()

	info, err := client.GetInfo()
	if nil != err {
		return err
	}
	printJson(m.w, info)
	return nil
}

func newCommitReply(info transactiondata.DataInfo) commitReply {
	return commitReply{
		DataInfo: info,
		Chunks:   transactiondata.ChunkCount(info.Size),
		Packed:   fmt.Sprintf("%x", info.Pack()),
	}
}

func readPayload(c *cli.Context) (*transactiondata.TransactionData, error) {
	file := c.String("file")
	if "" == file {
		return nil, fmt.Errorf("payload file is required")
	}

	var payload []byte
	var err error
	if "-" == file {
		payload, err = ioutil.ReadAll(os.Stdin)
	} else {
		payload, err = ioutil.ReadFile(file)
	}
	if nil != err {
		return nil, err
	}

	return transactiondata.FromPayload(payload)
}

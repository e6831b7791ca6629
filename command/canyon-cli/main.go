// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli"
)

type metadata struct {
	connect string
	verbose bool
	e       io.Writer
	w       io.Writer
}

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

func main() {
	app := newApp()
	if err := app.Run(os.Args); nil != err {
		fmt.Fprintf(app.ErrWriter, "terminated with error: %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {

	app := cli.NewApp()
	app.Name = "canyon-cli"
	app.Usage = "data commitments and perma storage client for canyond"
	app.Version = version
	app.HideVersion = true

	app.Writer = os.Stdout
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: " verbose result",
		},
		cli.StringFlag{
			Name:   "connect, c",
			Value:  "127.0.0.1:2130",
			Usage:  " canyond RPC `HOST:PORT`",
			EnvVar: "CANYON_CONNECT",
		},
	}

	fileFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "file, f",
			Value: "",
			Usage: "*payload `FILE`",
		},
	}
	commitmentFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "root, r",
			Value: "",
			Usage: "*chunk root `HEX`",
		},
		cli.Uint64Flag{
			Name:  "size, s",
			Usage: "*payload size in `BYTES`",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:      "commit",
			Usage:     "compute the data commitment of a payload",
			ArgsUsage: "\n   (* = required)",
			Flags:     fileFlags,
			Action:    runCommit,
		},
		{
			Name:      "verify",
			Usage:     "check a payload against a data commitment",
			ArgsUsage: "\n   (* = required)",
			Flags:     append(append([]cli.Flag{}, fileFlags...), commitmentFlags...),
			Action:    runVerify,
		},
		{
			Name:      "prove",
			Usage:     "produce and check the proof for one chunk of a payload",
			ArgsUsage: "\n   (* = required)",
			Flags: append(append([]cli.Flag{}, fileFlags...),
				cli.IntFlag{
					Name:  "index, i",
					Usage: "*chunk `INDEX`",
				},
			),
			Action: runProve,
		},
		{
			Name:      "set",
			Usage:     "store a value on canyond",
			ArgsUsage: "KEY VALUE\n   KEY and VALUE are text or 0x prefixed hex",
			Action:    runSet,
		},
		{
			Name:      "get",
			Usage:     "fetch a value from canyond",
			ArgsUsage: "KEY\n   KEY is text or 0x prefixed hex",
			Action:    runGet,
		},
		{
			Name:      "retain",
			Usage:     "commit a payload and store it on canyond",
			ArgsUsage: "\n   (* = required)",
			Flags:     fileFlags,
			Action:    runRetain,
		},
		{
			Name:      "fetch",
			Usage:     "fetch a retained payload from canyond and check its commitment",
			ArgsUsage: "\n   (* = required)",
			Flags: append(append([]cli.Flag{}, commitmentFlags...),
				cli.StringFlag{
					Name:  "output, o",
					Value: "-",
					Usage: " write payload to `FILE`",
				},
			),
			Action: runFetch,
		},
		{
			Name:   "info",
			Usage:  "display canyond status",
			Action: runInfo,
		},
		{
			Name:  "version",
			Usage: "display canyon-cli version",
			Action: func(c *cli.Context) error {
				fmt.Fprintf(c.App.Writer, "%s\n", version)
				return nil
			},
		},
	}

	app.Before = func(c *cli.Context) error {
		c.App.Metadata["config"] = &metadata{
			connect: c.GlobalString("connect"),
			verbose: c.GlobalBool("verbose"),
			e:       c.App.ErrWriter,
			w:       c.App.Writer,
		}
		return nil
	}

	return app
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"

	"github.com/canyon-network/canyond/configuration"
	"github.com/canyon-network/canyond/permastorage"
	"github.com/canyon-network/canyond/rpc/certificate"
	"github.com/canyon-network/canyond/storage"
	"github.com/canyon-network/canyond/transactiondata"
)

const (
	rpcCertificateKeyFilename = "rpc.crt"
	rpcPrivateKeyFilename     = "rpc.key"
)

// setup command handler
//
// commands that run to create key and certificate files these
// commands cannot access any internal database or states or the
// configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {
	case "gen-rpc-cert", "rpc":
		certificateFilename := getFilenameWithDirectory(arguments, rpcCertificateKeyFilename)
		privateKeyFilename := getFilenameWithDirectory(arguments, rpcPrivateKeyFilename)

		addresses := []string{}
		if len(arguments) >= 2 {
			for _, a := range arguments[1:] {
				if "" != a {
					addresses = append(addresses, a)
				}
			}
		}

		err := certificate.Generate(certificateFilename, privateKeyFilename, addresses)
		if nil != err {
			fmt.Printf("generate RPC key: %q and certificate: %q error: %s\n", privateKeyFilename, certificateFilename, err)
			exitwithstatus.Exit(1)
		}
		fmt.Printf("generated RPC key: %q and certificate: %q\n", privateKeyFilename, certificateFilename)

	case "start", "run":
		return false // continue processing

	case "stats", "compact", "commit-file", "commit":
		return false // defer processing until database is loaded

	case "config-test", "cfg":
		return false

	case "version", "v":
		fmt.Printf("%s\n", version)
		return true

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  gen-rpc-cert [DIR]         (rpc)    - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  gen-rpc-cert [DIR] [IPs...]         - create private key in:  %q\n", "DIR/"+rpcPrivateKeyFilename)
		fmt.Printf("                                        and the certificate in: %q\n", "DIR/"+rpcCertificateKeyFilename)
		fmt.Printf("\n")

		fmt.Printf("  start                      (run)    - just run the program, same as no arguments\n")
		fmt.Printf("                                        for convienience when passing script arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  config-test                (cfg)    - just check the configuration file\n")
		fmt.Printf("\n")

		fmt.Printf("  stats                               - display database statistics\n")
		fmt.Printf("\n")

		fmt.Printf("  compact                             - compact the database\n")
		fmt.Printf("\n")

		fmt.Printf("  commit-file FILE           (commit) - compute the data commitment of FILE and\n")
		fmt.Printf("                                        store the payload if retain_payloads is set\n")
		fmt.Printf("\n")

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// configuration file enquiry commands
// have configuration file read and decoded, but nothing else
func processConfigCommand(arguments []string, options *configuration.Configuration) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {
	case "config-test", "cfg":
		b, err := json.Marshal(options)
		if err != nil {
			exitwithstatus.Message("error: %s", err)
		}
		var out bytes.Buffer
		_ = json.Indent(&out, b, "", "  ")
		_, _ = out.WriteTo(os.Stdout)
		_, _ = os.Stdout.WriteString("\n")

	default: // unknown commands fall through to data command
		return false
	}

	// indicate processing complete and perform normal exit from main
	return true
}

// data command handler
// the database is open so these commands can access and/or change it
func processDataCommand(log *logger.L, arguments []string, options *configuration.Configuration, db *storage.Database, store permastorage.PermaStorage) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	switch command {

	case "start", "run":
		return false // continue processing

	case "stats":
		stats, err := db.Stats()
		if nil != err {
			exitwithstatus.Message("database stats error: %s", err)
		}
		n, err := db.Count(db.Columns.PermaStorage)
		if nil != err {
			exitwithstatus.Message("database count error: %s", err)
		}
		fmt.Printf("records: %d\n%s\n", n, stats)

	case "compact":
		err := db.Compact()
		if nil != err {
			exitwithstatus.Message("database compact error: %s", err)
		}

	case "commit-file", "commit":
		if len(arguments) < 1 || "" == arguments[0] {
			exitwithstatus.Message("missing file name argument")
		}
		filename := arguments[0]
		payload, err := ioutil.ReadFile(filename)
		if nil != err {
			exitwithstatus.Message("read: %q  error: %s", filename, err)
		}
		data, err := transactiondata.FromPayload(payload)
		if nil != err {
			exitwithstatus.Message("commit: %q  error: %s", filename, err)
		}

		if options.RetainPayloads {
			err = transactiondata.Retain(store, data)
			if nil != err {
				log.Errorf("retain: %q  error: %s", filename, err)
				exitwithstatus.Message("retain: %q  error: %s", filename, err)
			}
			log.Infof("retained: %q  root: %s  size: %d", filename, data.Info.ChunkRoot, data.Info.Size)
		} else {
			data.Discard()
		}

		printJSON(struct {
			transactiondata.DataInfo
			Packed   string `json:"packed"`
			Retained bool   `json:"retained"`
		}{
			DataInfo: data.Info,
			Packed:   fmt.Sprintf("%x", data.Info.Pack()),
			Retained: data.HasPayload(),
		})

	default:
		exitwithstatus.Message("error: no such command: %s", command)

	}

	// indicate processing complete and perform normal exit from main
	return true
}

// get the file name, optionally prefixed by a directory from the
// first argument
func getFilenameWithDirectory(arguments []string, name string) string {
	directory := "."
	if len(arguments) >= 1 && "" != arguments[0] {
		directory = arguments[0]
	}
	return filepath.Join(directory, name)
}

func printJSON(data interface{}) {
	b, err := json.MarshalIndent(data, "", "  ")
	if nil != err {
		exitwithstatus.Message("JSON error: %s", err)
	}
	fmt.Printf("%s\n", b)
}

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"net"
	"strconv"
	"strings"

	"github.com/canyon-network/canyond/fault"
)

// ParseListen - convert a configured listen address to network and address
//
// examples:
//   *:2130          -> tcp   [::]:2130
//   127.0.0.1:2130  -> tcp4  127.0.0.1:2130
//   [::1]:2130      -> tcp6  [::1]:2130
func ParseListen(listen string) (string, string, error) {
	listen = strings.TrimSpace(listen)
	if "" == listen {
		return "", "", fault.InvalidIpAddress
	}

	host, port, err := net.SplitHostPort(listen)
	if nil != err {
		return "", "", fault.InvalidIpAddress
	}

	numericPort, err := strconv.Atoi(port)
	if nil != err || numericPort < 1 || numericPort > 65535 {
		return "", "", fault.InvalidIpAddress
	}

	// "*:PORT" listens on tcp4 and tcp6
	if "*" == host {
		return "tcp", net.JoinHostPort("::", port), nil
	}

	ip := net.ParseIP(host)
	if nil == ip {
		return "", "", fault.InvalidIpAddress
	}
	if nil != ip.To4() {
		return "tcp4", net.JoinHostPort(ip.String(), port), nil
	}
	return "tcp6", net.JoinHostPort(ip.String(), port), nil
}

// IsLoopback - true if a remote "IP:port" address is on the local host
func IsLoopback(remoteAddress string) bool {
	host, _, err := net.SplitHostPort(remoteAddress)
	if nil != err {
		host = remoteAddress
	}
	ip := net.ParseIP(host)
	return nil != ip && ip.IsLoopback()
}

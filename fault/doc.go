// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches.  Errors that
// must carry an underlying cause are wrapped with fmt.Errorf("%w")
// so errors.Is still matches the instance here.
//
// Errors that cross the JSON-RPC boundary are given a numeric code
// by Code, all gateway errors live in the range starting at BaseCode.
package fault

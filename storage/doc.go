// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - maintain the on-disk data store
//
// This maintains a LevelDB database split into a series of columns.
// Each column is defined by a prefix byte that is obtained from the
// prefix tag in the struct defining the available columns.
//
// Writes are collected in a Transaction and applied by
// Database.Commit as a single batch, so either all of the changes in
// a transaction are persisted or none are.
//
// Notes:
// 1. each column has a single byte prefix
// 2. ++ = concatenation of byte data
//
// Version:
//
//   0x00 ++ "VERSION"          - database version
//                                data: big endian uint32
//
// Perma storage:
//
//   P ++ key                   - opaque value written by the perma store
//                                data: value bytes
//
// Testing:
//
//   Z ++ key                   - testing data
package storage

// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type StorageError GenericError

// common errors - keep in alphabetic order
var (
	AlreadyInitialised      = ExistsError("already initialised")
	CertificateFileExists   = ExistsError("certificate file already exists")
	CommitmentMismatch      = InvalidError("data commitment mismatch")
	DatabaseVersionMismatch = InvalidError("database version mismatch")
	InvalidChunkIndex       = InvalidError("invalid chunk index")
	InvalidChunkProof       = InvalidError("invalid chunk proof")
	InvalidCount            = InvalidError("invalid count")
	InvalidHexBytes         = InvalidError("invalid hex bytes")
	InvalidIpAddress        = InvalidError("invalid IP address")
	InvalidParameters       = InvalidError("invalid parameters")
	InvalidPolicy           = InvalidError("invalid unsafe RPC policy")
	InvalidStructPointer    = InvalidError("invalid struct pointer")
	KeyFileExists           = ExistsError("key file already exists")
	MissingParameters       = InvalidError("missing parameters")
	MissingPayload          = NotFoundError("payload not present")
	NotAChunkRoot           = InvalidError("not a chunk root")
	NotInitialised          = NotFoundError("not initialised")
	NotSupported            = ProcessError("operation not supported")
	OversizedPayload        = LengthError("payload size is at or above the maximum")
	PayloadNotFound         = NotFoundError("payload not found in storage")
	RateLimiting            = ProcessError("rate limiting")
	StorageClosed           = StorageError("storage closed")
	StorageCommitFailed     = StorageError("storage commit failed")
	StorageReadFailed       = StorageError("storage read failed")
	TransactionInUse        = ProcessError("storage transaction already committed")
	TruncatedRecord         = LengthError("truncated record")
	UnsafeRpcCalled         = ProcessError("RPC call is unsafe to be called externally")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e StorageError) Error() string  { return string(e) }

// determine the class of an error, looking through any wrapping
func IsErrExists(e error) bool   { var x ExistsError; return errors.As(e, &x) }
func IsErrInvalid(e error) bool  { var x InvalidError; return errors.As(e, &x) }
func IsErrLength(e error) bool   { var x LengthError; return errors.As(e, &x) }
func IsErrNotFound(e error) bool { var x NotFoundError; return errors.As(e, &x) }
func IsErrProcess(e error) bool  { var x ProcessError; return errors.As(e, &x) }
func IsErrStorage(e error) bool  { var x StorageError; return errors.As(e, &x) }

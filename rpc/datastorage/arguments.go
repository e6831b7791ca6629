// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package datastorage

import (
	"bytes"
	"encoding/json"

	"github.com/canyon-network/canyond/fault"
)

// SetArguments - arguments for Set
type SetArguments struct {
	Key   Bytes `json:"key"`
	Value Bytes `json:"value"`
}

// SetReply - Set has no result, it is sent as null
type SetReply struct{}

// GetArguments - arguments for Get
type GetArguments struct {
	Key Bytes `json:"key"`
}

// GetReply - the value, or null if the key is not present
type GetReply struct {
	Value *Bytes
}

// UnmarshalJSON - accept {"key":..,"value":..} or [key, value]
func (args *SetArguments) UnmarshalJSON(b []byte) error {
	fields, err := decodeParameters(b, "key", "value")
	if nil != err {
		return err
	}
	args.Key = *fields[0]
	args.Value = *fields[1]
	return nil
}

// UnmarshalJSON - accept {"key":..} or [key]
func (args *GetArguments) UnmarshalJSON(b []byte) error {
	fields, err := decodeParameters(b, "key")
	if nil != err {
		return err
	}
	args.Key = *fields[0]
	return nil
}

// MarshalJSON - always null
func (SetReply) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// MarshalJSON - the value or null
func (reply GetReply) MarshalJSON() ([]byte, error) {
	if nil == reply.Value {
		return []byte("null"), nil
	}
	return json.Marshal(*reply.Value)
}

// UnmarshalJSON - the value or null
func (reply *GetReply) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		reply.Value = nil
		return nil
	}
	var value Bytes
	if err := json.Unmarshal(b, &value); nil != err {
		return err
	}
	reply.Value = &value
	return nil
}

// decode named or positional parameters, all are required
func decodeParameters(b []byte, names ...string) ([]*Bytes, error) {
	fields := make([]*Bytes, len(names))

	b = bytes.TrimSpace(b)
	if 0 == len(b) {
		return nil, fault.MissingParameters
	}

	switch b[0] {
	case '[':
		var positional []*Bytes
		if err := json.Unmarshal(b, &positional); nil != err {
			return nil, err
		}
		if len(positional) != len(names) {
			return nil, fault.MissingParameters
		}
		copy(fields, positional)

	case '{':
		var named map[string]*Bytes
		if err := json.Unmarshal(b, &named); nil != err {
			return nil, err
		}
		for i, name := range names {
			fields[i] = named[name]
		}

	default:
		return nil, fault.InvalidParameters
	}

	for _, f := range fields {
		if nil == f {
			return nil, fault.MissingParameters
		}
	}
	return fields, nil
}

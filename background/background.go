// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package background

import (
	"sync"
)

// Process - a long running task owned by the daemon
//
// Run must return promptly once shutdown is closed
type Process interface {
	Run(args interface{}, shutdown <-chan struct{})
}

// Processes - list of processes to start together
type Processes []Process

// T - handle for a started group of processes
type T struct {
	shutdown chan struct{}
	stopOnce sync.Once
	running  sync.WaitGroup
}

// Start - run each process in its own goroutine
//
// all processes of the group share one shutdown channel
func Start(processes Processes, args interface{}) *T {
	t := &T{
		shutdown: make(chan struct{}),
	}

	t.running.Add(len(processes))
	for _, p := range processes {
		go func(p Process) {
			defer t.running.Done()
			p.Run(args, t.shutdown)
		}(p)
	}
	return t
}

// Stop - signal the group and wait until every process has returned
//
// safe to call more than once and on a nil handle
func (t *T) Stop() {
	if nil == t {
		return
	}
	t.stopOnce.Do(func() {
		close(t.shutdown)
	})
	t.running.Wait()
}

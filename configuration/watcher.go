// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2021 Canyon Network
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration

import (
	"path/filepath"
	"time"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"
)

const (
	// editors write in several steps, wait for quiet before reloading
	settleDelay = 500 * time.Millisecond
)

// ReloadFunc - receives each successfully re-read configuration
type ReloadFunc func(*Configuration)

// Watcher - re-read the configuration file when it changes
type Watcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	reload   ReloadFunc
}

// NewWatcher - watch fileName, calling reload after each change
//
// the containing directory is watched so that files replaced by
// rename are still seen
func NewWatcher(fileName string, log *logger.L, reload ReloadFunc) (*Watcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		log.Errorf("parse file %s error: %s", fileName, err)
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		log.Errorf("new watcher with error: %s", err)
		return nil, err
	}

	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		log.Errorf("watcher add error: %s", err)
		_ = watcher.Close()
		return nil, err
	}

	w := &Watcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		reload:   reload,
	}
	return w, nil
}

// Run - background process loop, ends when shutdown is closed
func (w *Watcher) Run(args interface{}, shutdown <-chan struct{}) {
	defer w.watcher.Close()

	log := w.log
	log.Infof("watching: %q", w.filePath)

	var settle <-chan time.Time

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.filePath {
				continue loop
			}
			log.Debugf("file event: %s", event)
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Chmod) != 0 {
				settle = time.After(settleDelay)
			}
			if event.Op&fsnotify.Remove == fsnotify.Remove {
				log.Warnf("file: %q removed, keep current configuration", w.filePath)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			log.Errorf("watcher error: %s", err)

		case <-settle:
			settle = nil
			configuration, err := Get(w.filePath)
			if nil != err {
				log.Errorf("reload: %q  error: %s", w.filePath, err)
				continue loop
			}
			log.Info("configuration reloaded")
			w.reload(configuration)
		}
	}

	log.Info("stopped")
}

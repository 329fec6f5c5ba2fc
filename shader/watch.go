// Copyright (c) 2026, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shader

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Source is the new text of a changed shader file.
type Source struct {
	Path string
	Code string
}

// Watcher watches shader files and sends their new text on C when
// they change. Files that fail to load are logged and not sent.
// C is meant to be polled from the render loop, so that shader
// modules are rebuilt on the thread that owns the device.
type Watcher struct {
	// C receives the changed sources. It holds only the latest
	// change; older ones are dropped if it is not drained.
	C <-chan Source

	c       chan Source
	watcher *fsnotify.Watcher
	files   map[string]bool
	done    chan struct{}
	once    sync.Once
}

// Watch returns a new watcher for the given shader files.
// It watches their directories, so that editors replacing the
// file by rename are seen too.
func Watch(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		c:       make(chan Source, 1),
		watcher: fw,
		files:   map[string]bool{},
		done:    make(chan struct{}),
	}
	w.C = w.c
	dirs := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		w.files[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !w.files[name] {
				continue
			}
			code, err := Load(name)
			if err != nil {
				slog.Error("shader: reload failed", "path", name, "err", err)
				continue
			}
			w.send(Source{Path: name, Code: code})
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("shader: watch error", "err", err)
		}
	}
}

// send replaces any pending source with src.
func (w *Watcher) send(src Source) {
	for {
		select {
		case w.c <- src:
			return
		default:
		}
		select {
		case <-w.c:
		default:
		}
	}
}

// Close stops watching. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shell

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gpulab/gpulab/pkg/cluster"
)

// Watch reloads the store whenever its backing file changes, so an editor
// session next to the shell takes effect without a manual reload. The watch
// is on the parent directory: saves via temp file and rename never fire
// events on the file itself.
func Watch(ctx context.Context, store *cluster.Store, log *Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	file := store.File()
	if err := w.Add(filepath.Dir(file)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != file {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			c, err := store.Reload()
			if err != nil {
				log.Error("reloading %s: %v", file, err)
				continue
			}
			log.Debug("cluster %q reloaded after change to %s", c.Name, file)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Error("watching %s: %v", file, err)
		}
	}
}

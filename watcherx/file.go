// Copyright © 2023 Ory Corp
// SPDX-License-Identifier: Apache-2.0

package watcherx

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// WatchFile watches the file at the given path and sends events on c until
// ctx is canceled, at which point c is closed. The parent directory is
// watched instead of the file itself so atomic replaces (write to a temporary
// file, rename over the original) show up as changes rather than ending the
// watch.
func WatchFile(ctx context.Context, file string, c EventChannel) error {
	resolved, err := filepath.Abs(file)
	if err != nil {
		return errors.WithStack(err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.WithStack(err)
	}

	if err := w.Add(filepath.Dir(resolved)); err != nil {
		_ = w.Close()
		return errors.WithStack(err)
	}

	go streamFileEvents(ctx, w, c, resolved)
	return nil
}

func streamFileEvents(ctx context.Context, w *fsnotify.Watcher, c EventChannel, file string) {
	defer func() {
		_ = w.Close()
		close(c)
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-w.Events:
			if !ok {
				return
			}

			eventPath, err := filepath.Abs(e.Name)
			if err != nil || eventPath != file {
				continue
			}

			switch {
			case e.Op.Has(fsnotify.Remove) || e.Op.Has(fsnotify.Rename):
				if !send(ctx, c, &RemoveEvent{source(file)}) {
					return
				}
			case e.Op.Has(fsnotify.Write) || e.Op.Has(fsnotify.Create):
				data, err := os.ReadFile(file)
				if err != nil {
					if !send(ctx, c, &ErrorEvent{error: errors.WithStack(err), source: source(file)}) {
						return
					}
					continue
				}
				if !send(ctx, c, &ChangeEvent{data: data, source: source(file)}) {
					return
				}
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			if !send(ctx, c, &ErrorEvent{error: errors.WithStack(err), source: source(file)}) {
				return
			}
		}
	}
}

func send(ctx context.Context, c EventChannel, e Event) bool {
	select {
	case <-ctx.Done():
		return false
	case c <- e:
		return true
	}
}

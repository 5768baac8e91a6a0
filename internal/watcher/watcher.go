// Package watcher re-runs a callback when a preset file changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// relevantOps are the operations that may leave the file with new content.
// Editors often save through a rename, so the parent folder is watched
// rather than the file itself.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename

// Watcher debounces change events for a single file.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   hclog.Logger
	watcher  *fsnotify.Watcher
}

// New watches path. Bursts of events closer together than debounce are
// reported once.
func New(path string, debounce time.Duration, logger hclog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %q: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		logger:   logger,
		watcher:  fsw,
	}, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Run blocks until ctx is done, calling onChange once per settled burst of
// changes. Callbacks run on the watcher goroutine and never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func(ctx context.Context)) error {
	defer w.watcher.Close()

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || event.Op&relevantOps == 0 {
				continue
			}
			w.logger.Trace("preset file event", "op", event.Op.String())
			if pending && !timer.Stop() {
				<-timer.C
			}
			timer.Reset(w.debounce)
			pending = true

		case <-timer.C:
			pending = false
			w.logger.Debug("preset file changed", "path", w.path)
			onChange(ctx)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
		}
	}
}

// Package watch reports changes to input files using fsnotify.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/binderdash/internal/core/ports/driven"
	"github.com/custodia-labs/binderdash/internal/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 150 * time.Millisecond

// Ensure Watcher implements the interface.
var _ driven.FileWatcher = (*Watcher)(nil)

// Watcher watches the parent directories of the given files so that
// atomic replace-on-save is seen as a change.
type Watcher struct {
	debounce time.Duration
}

// NewWatcher creates a watcher. A zero debounce uses DefaultDebounce.
func NewWatcher(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch calls onChange, from the calling goroutine, once per burst of
// writes to any of paths. It blocks until ctx is done.
func (w *Watcher) Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fsw.Close()

	// wanted maps cleaned absolute paths back to the caller's spelling.
	wanted := make(map[string]string, len(paths))
	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		wanted[abs] = p
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	fire := make(chan string, len(paths))
	timers := make(map[string]*time.Timer)
	defer func() {
		for _, t := range timers {
			t.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			path, ok := handleEvent(ev, wanted)
			if !ok {
				continue
			}
			if t, exists := timers[path]; exists {
				t.Reset(w.debounce)
				continue
			}
			timers[path] = time.AfterFunc(w.debounce, func() {
				select {
				case fire <- path:
				case <-ctx.Done():
				}
			})

		case path := <-fire:
			delete(timers, path)
			logger.Debug("changed: %s", path)
			onChange(path)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

// handleEvent maps a filesystem event to a watched path. Only writes and
// creations count; removals are ignored so a file mid-replace keeps its
// last good content.
func handleEvent(ev fsnotify.Event, wanted map[string]string) (string, bool) {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return "", false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return "", false
	}
	p, ok := wanted[abs]
	return p, ok
}

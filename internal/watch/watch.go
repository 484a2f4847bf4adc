// Package watch rebuilds files when they change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/zeebo/blake3"

	"github.com/alnah/go-md2typst/internal/logging"
)

// DefaultDebounce groups the bursts of events editors emit for one save.
const DefaultDebounce = 100 * time.Millisecond

// ErrNoFiles is returned when Run is given nothing to watch.
var ErrNoFiles = errors.New("watch requires at least one input file")

// RebuildFunc converts one changed file.
type RebuildFunc func(ctx context.Context, path string) error

// Watcher tracks a set of files and calls a rebuild function when their
// content changes.
type Watcher struct {
	Debounce time.Duration
	Logger   *slog.Logger

	mu      sync.Mutex
	digests map[string][32]byte
}

// New returns a Watcher with the default debounce.
func New(logger *slog.Logger) *Watcher {
	return &Watcher{Debounce: DefaultDebounce, Logger: logger}
}

// Run watches paths until ctx is done. The parent directories are watched
// so that editors replacing files by rename are still seen. Rebuild errors
// are logged and watching continues.
func (w *Watcher) Run(ctx context.Context, paths []string, rebuild RebuildFunc) error {
	if len(paths) == 0 {
		return ErrNoFiles
	}
	logger := logging.FromContext(ctx, w.Logger)

	tracked := make(map[string]bool, len(paths))
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return fmt.Errorf("resolving %s: %w", p, err)
		}
		tracked[abs] = true
		dirs[filepath.Dir(abs)] = true
		// Seed digests so the first unchanged write is skipped.
		w.changed(abs)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	pending := make(map[string]bool)
	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil || !tracked[abs] {
				continue
			}
			pending[abs] = true
			timer.Reset(debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-timer.C:
			for path := range pending {
				delete(pending, path)
				if !w.changed(path) {
					logger.Debug("content unchanged, skipping", "file", path)
					continue
				}
				if err := rebuild(ctx, path); err != nil {
					logger.Error("rebuild failed", "file", path, "error", err)
				}
			}
		}
	}
}

// changed records the digest of path and reports whether it differs from
// the previous one. Unreadable files count as unchanged.
func (w *Watcher) changed(path string) bool {
	data, err := os.ReadFile(path) // #nosec G304 -- tracked input file
	if err != nil {
		return false
	}
	sum := blake3.Sum256(data)

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.digests == nil {
		w.digests = make(map[string][32]byte)
	}
	prev, seen := w.digests[path]
	w.digests[path] = sum
	return !seen || prev != sum
}

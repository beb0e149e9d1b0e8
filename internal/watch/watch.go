// Package watch re-runs a callback when files under a directory change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/ksk-aiko/ResumeWebsite/internal/walker"
)

// DefaultDebounce coalesces bursts of events such as an editor's
// write-then-rename save.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a directory tree.
type Watcher struct {
	Root     string
	Ignore   []string // absolute directories whose events are dropped
	Debounce time.Duration
	Logger   *zap.Logger
}

// Run blocks until ctx is done, calling onChange once per debounced burst
// of filesystem events. Newly created directories are watched as they
// appear.
func (w *Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	logger := w.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.Root); err != nil {
		return err
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if w.ignored(ev.Name) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				// Ignore errors; the path may already be gone.
				_ = w.addTree(fw, ev.Name)
			}
			logger.Debug("change detected", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", zap.Error(err))

		case <-fire:
			fire = nil
			onChange(ctx)
		}
	}
}

// addTree adds root and every published directory below it.
func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (walker.Unpublished(d.Name()) || w.ignored(path)) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		return nil
	})
}

func (w *Watcher) ignored(path string) bool {
	for _, dir := range w.Ignore {
		if path == dir || strings.HasPrefix(path, dir+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Package watch re-runs a callback when watched Sass files change.
package watch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the watcher waits for a burst of events on the
// same files to settle before reporting them.
const DefaultDebounce = 100 * time.Millisecond

// Filter reports whether a path takes part in watching. Directories are
// passed with isDir set so excluded trees can be pruned.
type Filter func(path string, isDir bool) bool

// Watcher reports writes and creates of matching files.
type Watcher struct {
	log      *zap.SugaredLogger
	filter   Filter
	debounce time.Duration
}

// New returns a Watcher. A nil filter accepts every path.
func New(log *zap.SugaredLogger, filter Filter) *Watcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if filter == nil {
		filter = func(string, bool) bool { return true }
	}
	return &Watcher{log: log, filter: filter, debounce: DefaultDebounce}
}

// Run watches paths until ctx is done and calls onChange once per changed
// file after each burst of events, in path order. Directories are watched
// recursively; for a file its parent directory is watched.
func (w *Watcher) Run(ctx context.Context, paths []string, onChange func(path string)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	for _, p := range paths {
		if err := w.add(fw, p); err != nil {
			return err
		}
	}
	w.log.Infow("watching for changes", "paths", paths)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	timer.Stop()

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

			info, err := os.Stat(ev.Name)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if ev.Has(fsnotify.Create) {
					if err := w.add(fw, ev.Name); err != nil {
						w.log.Warnw("failed to watch new directory", "path", ev.Name, "error", err)
					}
				}
				continue
			}
			if !w.filter(ev.Name, false) {
				continue
			}

			pending[ev.Name] = struct{}{}
			timer.Reset(w.debounce)

		case <-timer.C:
			changed := make([]string, 0, len(pending))
			for p := range pending {
				changed = append(changed, p)
			}
			sort.Strings(changed)
			clear(pending)

			for _, p := range changed {
				w.log.Debugw("file changed", "path", p)
				onChange(p)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnw("watch error", "error", err)
		}
	}
}

// add registers p with fw. Directories are walked and every accepted
// subdirectory is added.
func (w *Watcher) add(fw *fsnotify.Watcher, p string) error {
	info, err := os.Stat(p)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", p, err)
	}
	if !info.IsDir() {
		if err := fw.Add(filepath.Dir(p)); err != nil {
			return fmt.Errorf("failed to watch %s: %w", p, err)
		}
		return nil
	}

	return filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != p && !w.filter(path, true) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

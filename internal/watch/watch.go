// Package watch re-runs a callback when Poryscript files change on disk.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/porytext/internal/logging"
)

// DefaultDebounce is how long the watcher waits for a burst of events to
// settle before calling the handler.
const DefaultDebounce = 300 * time.Millisecond

// ErrNoRoots is returned when there is nothing to watch.
var ErrNoRoots = errors.New("no paths to watch")

// Handler is called with the sorted, de-duplicated paths that changed.
type Handler func(ctx context.Context, paths []string) error

// Options configures a Watcher.
type Options struct {
	// Roots are the files and directories to watch. Directories are watched
	// recursively, skipping hidden ones.
	Roots []string

	// Extensions limits which files trigger the handler, e.g. ".pory".
	// Empty means every file.
	Extensions []string

	// Debounce overrides DefaultDebounce.
	Debounce time.Duration
}

// Watcher turns fsnotify events into batched change notifications.
type Watcher struct {
	opts    Options
	fsw     *fsnotify.Watcher
	files   map[string]bool // explicitly watched files
	dirs    map[string]bool // recursively watched directories
	pending map[string]bool
}

// New creates a Watcher and registers every root.
func New(opts Options) (*Watcher, error) {
	if len(opts.Roots) == 0 {
		return nil, ErrNoRoots
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		opts:    opts,
		fsw:     fsw,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		pending: make(map[string]bool),
	}

	for _, root := range opts.Roots {
		if err := w.addRoot(root); err != nil {
			_ = fsw.Close()
			return nil, err
		}
	}

	return w, nil
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

// WatchList returns the directories currently being watched.
func (w *Watcher) WatchList() []string {
	list := w.fsw.WatchList()
	sort.Strings(list)
	return list
}

// Run delivers changes to handler until ctx is cancelled. Handler errors are
// logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context, handler Handler) error {
	logger := logging.FromContext(ctx)

	timer := time.NewTimer(w.opts.Debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if w.handleEvent(event) {
				logger.Debug("file event", logging.FieldPath, event.Name, logging.FieldEvent, event.Op.String())
				timer.Reset(w.opts.Debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("File watcher error", logging.FieldError, err)

		case <-timer.C:
			paths := w.drain()
			if len(paths) == 0 {
				continue
			}
			logger.Debug("Files changed", logging.FieldPaths, paths)
			if err := handler(ctx, paths); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				logger.Error("Re-check failed", logging.FieldError, err)
			}
		}
	}
}

// handleEvent records a relevant event and reports whether it should
// (re)start the debounce timer.
func (w *Watcher) handleEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	path := filepath.Clean(event.Name)

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			// New directories are not reported, but their files are.
			if w.dirs[filepath.Dir(path)] {
				_ = w.addDir(path)
			}
			return false
		}
	}

	if !w.matches(path) {
		return false
	}

	// Renames report the old name; only paths that still exist are useful.
	if _, err := os.Stat(path); err != nil {
		return false
	}

	w.pending[path] = true
	return true
}

func (w *Watcher) drain() []string {
	paths := make([]string, 0, len(w.pending))
	for path := range w.pending {
		paths = append(paths, path)
	}
	clear(w.pending)
	sort.Strings(paths)
	return paths
}

func (w *Watcher) matches(path string) bool {
	if w.files[path] {
		return true
	}
	// Parents of file roots are watched for those files only.
	if !w.dirs[filepath.Dir(path)] {
		return false
	}
	if isHidden(filepath.Base(path)) {
		return false
	}
	if len(w.opts.Extensions) == 0 {
		return true
	}
	return slices.Contains(w.opts.Extensions, strings.ToLower(filepath.Ext(path)))
}

func (w *Watcher) addRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", root, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	if !info.IsDir() {
		// Watch the parent so editors that save by rename are still seen.
		w.files[abs] = true
		if err := w.fsw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
		return nil
	}

	return w.addDir(abs)
}

// addDir watches dir and every non-hidden directory below it.
func (w *Watcher) addDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.dirs[path] = true
		return nil
	})
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

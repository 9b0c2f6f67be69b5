// Package watch notices writes to a SQLite database file made by this or
// any other process.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/cauldron/internal/core/domain"
	"github.com/custodia-labs/cauldron/internal/core/ports/driven"
	"github.com/custodia-labs/cauldron/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.StoreWatcher = (*Watcher)(nil)

// sidecars are the files SQLite writes next to the main database.
var sidecars = []string{"", "-wal", "-journal"}

// Watcher watches a database file and its WAL and rollback journal.
// The parent directory is watched so that files created after Watch
// (the WAL in particular) are still seen.
type Watcher struct {
	path    string
	targets map[string]struct{}

	mu       sync.Mutex
	closed   bool
	watchers []*fsnotify.Watcher
}

// memoryPath names a private in-memory database, which has no files.
const memoryPath = ":memory:"

// New creates a watcher for the database at path.
func New(path string) *Watcher {
	if path == memoryPath {
		return &Watcher{path: path}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	targets := make(map[string]struct{}, len(sidecars))
	for _, suffix := range sidecars {
		targets[abs+suffix] = struct{}{}
	}
	return &Watcher{path: abs, targets: targets}
}

// Watch starts watching. Bursts of events are coalesced: the returned
// channel holds at most one pending notification.
func (w *Watcher) Watch(ctx context.Context) (<-chan struct{}, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil, errors.New("watcher closed")
	}
	if w.path == memoryPath {
		return nil, fmt.Errorf("%w: an in-memory database cannot be watched", domain.ErrInvalidInput)
	}

	dir := filepath.Dir(w.path)
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: watch directory: %w", domain.ErrInvalidInput, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	w.watchers = append(w.watchers, fw)

	out := make(chan struct{}, 1)
	go w.loop(ctx, fw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher, out chan<- struct{}) {
	defer close(out)
	defer func() { _ = fw.Close() }()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			logger.Debug("Store changed: %s %s", event.Op, filepath.Base(event.Name))
			select {
			case out <- struct{}{}:
			default:
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// relevant reports whether event touches the database or its sidecars.
// Chmod alone never changes content.
func (w *Watcher) relevant(event fsnotify.Event) bool {
	if _, ok := w.targets[filepath.Clean(event.Name)]; !ok {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// Close stops every active Watch. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	var errs []error
	for _, fw := range w.watchers {
		errs = append(errs, fw.Close())
	}
	w.watchers = nil
	return errors.Join(errs...)
}

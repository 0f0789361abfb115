package lockfile

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-logr/logr"
)

// Watcher keeps a cached lock status up to date from filesystem events on
// the lock's parent directory, so readers never touch the filesystem.
type Watcher struct {
	dir     string
	log     logr.Logger
	watcher *fsnotify.Watcher

	mu     sync.RWMutex
	status Status
}

// NewWatcher starts watching the parent of dir. The parent must exist.
func NewWatcher(dir string, log logr.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating file watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(dir)); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(dir), err)
	}

	w := &Watcher{
		dir:     dir,
		log:     log.WithName("lockfile"),
		watcher: fw,
	}
	// Only succeeds when the lock is already held.
	_ = fw.Add(dir)
	w.refresh()
	return w, nil
}

// Status implements Source.
func (w *Watcher) Status() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status
}

// Run processes filesystem events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer func() { _ = w.watcher.Close() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.V(1).Info("lock watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Name != w.dir && filepath.Dir(event.Name) != w.dir {
		return
	}

	// The marker files are written after the directory appears.
	if event.Name == w.dir && event.Has(fsnotify.Create) {
		if err := w.watcher.Add(w.dir); err != nil {
			w.log.V(1).Info("cannot watch lock directory", "dir", w.dir, "error", err)
		}
	}

	prev := w.Status()
	w.refresh()
	if next := w.Status(); next.State != prev.State {
		w.log.Info("lock state changed", "from", prev.State, "to", next.State, "owner", next.Owner, "workgroup", next.Workgroup)
	}
}

func (w *Watcher) refresh() {
	s := Read(w.dir)
	w.mu.Lock()
	w.status = s
	w.mu.Unlock()
}

package watcher

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/datagen/internal/core/ports"
)

var _ ports.Watcher = (*Watcher)(nil)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// Watcher watches individual files through their parent directories, so editors that
// replace a file by renaming over it are still seen.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	log       ports.Logger
	window    time.Duration

	files     map[string]struct{}
	debouncer *Debouncer

	started bool
	mu      sync.Mutex
	changes chan []string
	closed  bool
	done    chan struct{}
}

// NewWatcher creates a file watcher that batches events over window.
func NewWatcher(log ports.Logger, window time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		fsWatcher: fsw,
		log:       log,
		window:    window,
		files:     make(map[string]struct{}),
		changes:   make(chan []string),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching files.
func (w *Watcher) Start(ctx context.Context, files []string) error {
	dirs := make([]string, 0, len(files))
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return err
		}
		w.files[abs] = struct{}{}
		dirs = append(dirs, filepath.Dir(abs))
	}

	slices.Sort(dirs)
	for _, dir := range slices.Compact(dirs) {
		if err := w.fsWatcher.Add(dir); err != nil {
			return err
		}
	}

	w.debouncer = NewDebouncer(w.window, func(paths []string) { w.emit(ctx, paths) })
	w.started = true
	go w.processEvents(ctx)
	return nil
}

// Stop stops the watcher and releases all resources.
func (w *Watcher) Stop() error {
	err := w.fsWatcher.Close()
	if w.started {
		<-w.done
	}
	return err
}

// Changes returns an iterator over batches of changed files.
func (w *Watcher) Changes() iter.Seq[[]string] {
	return func(yield func([]string) bool) {
		for batch := range w.changes {
			if !yield(batch) {
				return
			}
		}
	}
}

func (w *Watcher) processEvents(ctx context.Context) {
	defer w.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if event.Op&relevantOps == 0 {
				continue
			}
			if _, watched := w.files[filepath.Clean(event.Name)]; watched {
				w.debouncer.Add(filepath.Clean(event.Name))
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.log.Warn(fmt.Sprintf("watcher: file system error: %v", err))
		}
	}
}

func (w *Watcher) emit(ctx context.Context, paths []string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	select {
	case w.changes <- paths:
	case <-ctx.Done():
	case <-w.done:
	}
}

func (w *Watcher) shutdown() {
	w.debouncer.Stop()
	close(w.done)

	w.mu.Lock()
	w.closed = true
	close(w.changes)
	w.mu.Unlock()
}

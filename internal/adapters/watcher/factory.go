package watcher

import (
	"time"

	"go.trai.ch/datagen/internal/core/ports"
)

var _ ports.WatcherFactory = (*Factory)(nil)

// Factory creates fsnotify watchers sharing a logger and debounce window.
type Factory struct {
	log    ports.Logger
	window time.Duration
}

// NewFactory creates a new Factory.
func NewFactory(log ports.Logger, window time.Duration) *Factory {
	return &Factory{log: log, window: window}
}

// NewWatcher creates a new, unstarted watcher.
func (f *Factory) NewWatcher() (ports.Watcher, error) {
	return NewWatcher(f.log, f.window)
}

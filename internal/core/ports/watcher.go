package ports

import (
	"context"
	"iter"
)

// Watcher reports changes to a fixed set of files.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching files. Changes are reported until ctx is done or Stop is called.
	Start(ctx context.Context, files []string) error

	// Stop releases the watcher. Changes ends once Stop returns.
	Stop() error

	// Changes yields one sorted batch of changed paths per quiet period.
	Changes() iter.Seq[[]string]
}

// WatcherFactory creates watchers. Every watch session gets its own watcher.
type WatcherFactory interface {
	NewWatcher() (Watcher, error)
}

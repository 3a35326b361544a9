package hashcache

import (
	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/ports"
)

// Factory creates a HashCache per run from long-lived dependencies.
type Factory struct {
	fs     afero.Fs
	store  ports.CacheStore
	walker ports.FileWalker
	log    ports.Logger
}

// NewFactory creates a new Factory.
func NewFactory(fsys afero.Fs, store ports.CacheStore, walker ports.FileWalker, log ports.Logger) *Factory {
	return &Factory{fs: fsys, store: store, walker: walker, log: log}
}

// New creates a HashCache for one run. See New.
func (f *Factory) New(rootDir, versionTag string, providerIDs []string) (*HashCache, error) {
	return New(f.fs, f.store, f.walker, f.log, rootDir, versionTag, providerIDs)
}

// Store returns the cache store records are persisted with.
func (f *Factory) Store() ports.CacheStore {
	return f.store
}

// Package cas implements the on-disk store for per-provider cache records.
package cas

import (
	"bytes"
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CacheStore = (*Store)(nil)

// NowFunc returns the current time.
type NowFunc func() time.Time

// Store implements ports.CacheStore using a file-per-provider strategy.
type Store struct {
	fs  afero.Fs
	now NowFunc
}

// NewStore creates a new Store on the given filesystem.
func NewStore(fsys afero.Fs) *Store {
	return &Store{fs: fsys, now: time.Now}
}

// WithNow overrides the clock used for cache file headers.
func (s *Store) WithNow(now NowFunc) *Store {
	s.now = now
	return s
}

// FileName returns the cache file name for a provider id. Ids are free-form, so the
// name is a fixed-length hash of the id.
func FileName(providerID string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(providerID))
}

// Path returns the cache file path for the provider.
func (s *Store) Path(root, providerID string) string {
	return filepath.Join(domain.CacheDir(root), FileName(providerID))
}

// Load reads the provider's cache record.
func (s *Store) Load(root, providerID string) (*domain.ProviderCache, error) {
	path := s.Path(root, providerID)

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheReadFailed.Error()), "path", path)
	}

	cache, err := Decode(bytes.NewReader(data), root)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return cache, nil
}

// Save writes the record to a temporary file and renames it over the cache file,
// so a failed save leaves the previous file in place.
func (s *Store) Save(root, providerID string, cache *domain.ProviderCache) error {
	path := s.Path(root, providerID)
	dir := filepath.Dir(path)

	if err := s.fs.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error()), "path", dir)
	}

	tmp, err := afero.TempFile(s.fs, dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	tmpPath := tmp.Name()

	if err := Encode(tmp, root, providerID, cache, s.now()); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}

	if err := s.fs.Rename(tmpPath, path); err != nil {
		_ = s.fs.Remove(tmpPath)
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "path", path)
	}
	return nil
}

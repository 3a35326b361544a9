package hashcache

import (
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.CachedOutput = (*Updater)(nil)

// UpdateResult is the outcome of one provider run, handed back to HashCache.ApplyUpdate.
type UpdateResult struct {
	ProviderID string
	Cache      *domain.ProviderCache
	Writes     int
}

// Updater gates the writes of a single provider run on the hashes recorded by the
// previous run and collects the new record.
type Updater struct {
	fs         afero.Fs
	rootDir    string
	providerID string
	previous   *domain.ProviderCache
	builder    domain.MutableCacheBuilder

	writes atomic.Int64
	closed atomic.Bool
}

func newUpdater(
	fsys afero.Fs,
	rootDir, providerID, versionTag string,
	previous *domain.ProviderCache,
) *Updater {
	return &Updater{
		fs:         fsys,
		rootDir:    rootDir,
		providerID: providerID,
		previous:   previous,
		builder:    domain.NewProviderCacheBuilder(versionTag),
	}
}

// ProviderID returns the id of the provider this updater belongs to.
func (u *Updater) ProviderID() string {
	return u.providerID
}

// WriteIfNeeded writes data to path when the previous run recorded a different hash
// for it, or when the file no longer exists. The path is recorded in either case.
// Paths outside the root, the run manifest and the cache directory are rejected.
//
// It panics when called after Close.
func (u *Updater) WriteIfNeeded(path string, data []byte, hash domain.Hash) error {
	if u.closed.Load() {
		panic(zerr.With(zerr.With(domain.ErrUpdaterClosed, "provider", u.providerID), "path", path))
	}

	path = filepath.Clean(path)
	if !isWithin(u.rootDir, path) {
		return zerr.With(zerr.With(domain.ErrOutputOutsideRoot, "path", path), "root", u.rootDir)
	}

	if rel, err := filepath.Rel(u.rootDir, path); err == nil && domain.IsReservedPath(rel) {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrReservedOutputPath, "invalid output path"), "provider", u.providerID), "path", path)
	}

	write, err := u.shouldWrite(path, hash)
	if err != nil {
		return err
	}

	if write {
		dir := filepath.Dir(path)
		if err := u.fs.MkdirAll(dir, domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrOutputDirCreateFailed.Error()), "path", dir)
		}
		if err := afero.WriteFile(u.fs, path, data, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrOutputWriteFailed.Error()), "path", path)
		}
		u.writes.Add(1)
	}

	u.builder.Put(path, hash)
	return nil
}

func (u *Updater) shouldWrite(path string, hash domain.Hash) (bool, error) {
	if prev, ok := u.previous.Get(path); !ok || prev != hash {
		return true, nil
	}

	exists, err := afero.Exists(u.fs, path)
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrOutputStatFailed.Error()), "path", path)
	}
	return !exists, nil
}

// Close finalizes the updater. Every WriteIfNeeded call must have returned before
// Close is called; later calls panic.
func (u *Updater) Close() UpdateResult {
	if !u.closed.CompareAndSwap(false, true) {
		panic(zerr.With(domain.ErrUpdaterClosed, "provider", u.providerID))
	}

	return UpdateResult{
		ProviderID: u.providerID,
		Cache:      u.builder.Build(),
		Writes:     int(u.writes.Load()),
	}
}

func isWithin(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

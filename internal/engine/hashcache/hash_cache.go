// Package hashcache implements the incremental output cache shared by all providers
// of a run: content-hash gated writes, per-provider records and stale file cleanup.
package hashcache

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// HashCache owns the cache records of every registered provider for one run.
// It is not safe for concurrent use; only Updaters are shared with provider goroutines.
type HashCache struct {
	fs     afero.Fs
	store  ports.CacheStore
	walker ports.FileWalker
	log    ports.Logger

	rootDir    string
	cacheDir   string
	versionTag string

	ids          []string
	providers    map[string]*domain.ProviderCache
	originals    map[string]*domain.ProviderCache
	dirty        map[string]struct{}
	writes       int
	initialCount int
}

// New creates the cache directory and eagerly loads the record of every provider.
// A missing cache file yields an empty record; an unreadable one is logged and
// treated the same way.
func New(
	fsys afero.Fs,
	store ports.CacheStore,
	walker ports.FileWalker,
	log ports.Logger,
	rootDir, versionTag string,
	providerIDs []string,
) (*HashCache, error) {
	rootDir = filepath.Clean(rootDir)
	h := &HashCache{
		fs:         fsys,
		store:      store,
		walker:     walker,
		log:        log,
		rootDir:    rootDir,
		cacheDir:   domain.CacheDir(rootDir),
		versionTag: versionTag,
		ids:        make([]string, 0, len(providerIDs)),
		providers:  make(map[string]*domain.ProviderCache, len(providerIDs)),
		originals:  make(map[string]*domain.ProviderCache, len(providerIDs)),
		dirty:      make(map[string]struct{}),
	}

	if err := fsys.MkdirAll(h.cacheDir, domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheDirCreateFailed.Error()), "path", h.cacheDir)
	}

	for _, id := range providerIDs {
		if _, ok := h.providers[id]; ok {
			return nil, zerr.With(domain.ErrDuplicateProvider, "provider", id)
		}

		record := h.load(id)
		h.ids = append(h.ids, id)
		h.providers[id] = record
		h.originals[id] = record
		h.initialCount += record.Len()
	}

	return h, nil
}

func (h *HashCache) load(id string) *domain.ProviderCache {
	record, err := h.store.Load(h.rootDir, id)
	if err != nil {
		h.log.Warn(fmt.Sprintf("failed to load cache for provider %q, it will be regenerated: %v", id, err))
		return domain.UnknownProviderCache()
	}
	if record == nil {
		return domain.UnknownProviderCache()
	}
	return record
}

// RootDir returns the output root.
func (h *HashCache) RootDir() string {
	return h.rootDir
}

// VersionTag returns the version tag of the current run.
func (h *HashCache) VersionTag() string {
	return h.versionTag
}

// ShouldRunInThisVersion reports whether the provider has no record produced under the
// current version tag.
func (h *HashCache) ShouldRunInThisVersion(id string) bool {
	record, ok := h.providers[id]
	return !ok || record.Version() != h.versionTag
}

// BeginUpdate returns an Updater that gates writes on the provider's current record.
func (h *HashCache) BeginUpdate(id string) (*Updater, error) {
	record, ok := h.providers[id]
	if !ok {
		return nil, zerr.With(domain.ErrProviderNotRegistered, "provider", id)
	}
	return newUpdater(h.fs, h.rootDir, id, h.versionTag, record), nil
}

// ApplyUpdate replaces the provider's record with the result of a finished run.
func (h *HashCache) ApplyUpdate(result UpdateResult) error {
	if _, ok := h.providers[result.ProviderID]; !ok {
		return zerr.With(domain.ErrProviderNotRegistered, "provider", result.ProviderID)
	}

	h.providers[result.ProviderID] = result.Cache
	h.dirty[result.ProviderID] = struct{}{}
	h.writes += result.Writes
	return nil
}

// Record returns the provider's current record.
func (h *HashCache) Record(id string) (*domain.ProviderCache, bool) {
	record, ok := h.providers[id]
	return record, ok
}

// PurgeStaleAndWrite deletes every file under the output root that no record
// references, then persists the records that changed during this run.
//
// Failures to delete a file or to save a record are logged and counted; only a root
// that cannot be walked at all is returned as an error.
func (h *HashCache) PurgeStaleAndWrite() (domain.PurgeReport, error) {
	referenced := h.referencedPaths()
	report := domain.PurgeReport{
		PreviousCount:   h.initialCount,
		ReferencedCount: len(referenced),
		Written:         h.writes,
	}

	if err := h.purge(referenced, &report); err != nil {
		return report, err
	}
	h.persist(&report)

	h.log.Info(fmt.Sprintf(
		"caching: total files: %d, old count: %d, new count: %d, removed stale: %d, written: %d",
		report.FilesSeen,
		report.PreviousCount,
		report.ReferencedCount,
		report.Deleted,
		report.Written,
	))
	return report, nil
}

func (h *HashCache) referencedPaths() map[string]struct{} {
	referenced := make(map[string]struct{})
	for _, record := range h.providers {
		for p := range record.Paths() {
			referenced[p] = struct{}{}
		}
	}
	referenced[domain.ManifestPath(h.rootDir)] = struct{}{}
	return referenced
}

func (h *HashCache) purge(referenced map[string]struct{}, report *domain.PurgeReport) error {
	exists, err := afero.DirExists(h.fs, h.rootDir)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPurgeWalkFailed.Error()), "path", h.rootDir)
	}
	if !exists {
		return nil
	}

	cacheFiles := make(map[string]struct{}, len(h.ids))
	for _, id := range h.ids {
		cacheFiles[filepath.Clean(h.store.Path(h.rootDir, id))] = struct{}{}
	}

	for path, walkErr := range h.walker.WalkFiles(h.rootDir, nil) {
		if walkErr != nil {
			if path == h.rootDir {
				return zerr.With(zerr.Wrap(walkErr, domain.ErrPurgeWalkFailed.Error()), "path", h.rootDir)
			}
			h.log.Warn(fmt.Sprintf("failed to read %s: %v", path, walkErr))
			continue
		}

		path = filepath.Clean(path)
		if _, ok := cacheFiles[path]; ok {
			continue
		}

		report.FilesSeen++
		if _, ok := referenced[path]; ok {
			continue
		}

		if err := h.fs.Remove(path); err != nil {
			h.log.Warn(fmt.Sprintf("failed to delete stale file %s: %v", path, err))
			report.DeleteFailed++
			continue
		}
		h.log.Debug(fmt.Sprintf("deleted stale file %s", path))
		report.Deleted++
	}
	return nil
}

func (h *HashCache) persist(report *domain.PurgeReport) {
	for _, id := range h.ids {
		if _, ok := h.dirty[id]; !ok {
			continue
		}

		record := h.providers[id]
		if record.Equal(h.originals[id]) && h.cacheFileExists(id) {
			continue
		}

		if err := h.store.Save(h.rootDir, id, record); err != nil {
			h.log.Warn(fmt.Sprintf("failed to write cache for provider %q: %v", id, err))
			continue
		}
		report.CachesSaved++
	}
}

func (h *HashCache) cacheFileExists(id string) bool {
	exists, err := afero.Exists(h.fs, h.store.Path(h.rootDir, id))
	return err == nil && exists
}

// ProviderIDs returns the registered provider ids in registration order.
func (h *HashCache) ProviderIDs() []string {
	return slices.Clone(h.ids)
}

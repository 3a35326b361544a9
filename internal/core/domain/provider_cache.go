package domain

import (
	"iter"
	"maps"
	"slices"
	"sync"

	"go.trai.ch/zerr"
)

// CacheEntry is a single output path and the hash of its content.
type CacheEntry struct {
	Path string
	Hash Hash
}

// ProviderCache is an immutable snapshot of the outputs one provider produced,
// keyed by cleaned absolute path.
type ProviderCache struct {
	version string
	entries map[string]Hash
}

// NewProviderCache creates a ProviderCache from a copy of entries.
func NewProviderCache(version string, entries map[string]Hash) *ProviderCache {
	return &ProviderCache{
		version: version,
		entries: maps.Clone(entries),
	}
}

// UnknownProviderCache returns the empty record used when no usable cache file exists.
func UnknownProviderCache() *ProviderCache {
	return &ProviderCache{
		version: UnknownVersion,
		entries: map[string]Hash{},
	}
}

// Version returns the version tag the record was produced under.
func (c *ProviderCache) Version() string {
	return c.version
}

// Get returns the recorded hash for path.
func (c *ProviderCache) Get(path string) (Hash, bool) {
	h, ok := c.entries[path]
	return h, ok
}

// Len returns the number of recorded outputs.
func (c *ProviderCache) Len() int {
	return len(c.entries)
}

// Paths yields every recorded output path in unspecified order.
func (c *ProviderCache) Paths() iter.Seq[string] {
	return maps.Keys(c.entries)
}

// Entries returns the recorded outputs sorted by path.
func (c *ProviderCache) Entries() []CacheEntry {
	out := make([]CacheEntry, 0, len(c.entries))
	for _, p := range slices.Sorted(maps.Keys(c.entries)) {
		out = append(out, CacheEntry{Path: p, Hash: c.entries[p]})
	}
	return out
}

// Equal reports whether both records carry the same version and entries.
func (c *ProviderCache) Equal(other *ProviderCache) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.version == other.version && maps.Equal(c.entries, other.entries)
}

// MutableCacheBuilder accumulates entries during a provider run.
// Put must be safe for concurrent use; Build is called exactly once.
type MutableCacheBuilder interface {
	Put(path string, hash Hash)
	Build() *ProviderCache
}

var _ MutableCacheBuilder = (*ProviderCacheBuilder)(nil)

// ProviderCacheBuilder is a mutex-guarded MutableCacheBuilder.
type ProviderCacheBuilder struct {
	version string

	mu      sync.Mutex
	entries map[string]Hash
	built   bool
}

// NewProviderCacheBuilder creates an empty builder for the given version tag.
func NewProviderCacheBuilder(version string) *ProviderCacheBuilder {
	return &ProviderCacheBuilder{
		version: version,
		entries: make(map[string]Hash),
	}
}

// Put records the hash for path, replacing any earlier value.
func (b *ProviderCacheBuilder) Put(path string, hash Hash) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built {
		panic(zerr.With(ErrBuilderFinalized, "path", path))
	}
	b.entries[path] = hash
}

// Build finalizes the builder into an immutable ProviderCache.
func (b *ProviderCacheBuilder) Build() *ProviderCache {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.built {
		panic(ErrBuilderFinalized)
	}
	b.built = true

	// The map is handed over without copying; the builder never touches it again.
	return &ProviderCache{
		version: b.version,
		entries: b.entries,
	}
}

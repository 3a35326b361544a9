package ports

import "go.trai.ch/datagen/internal/core/domain"

// CacheStore persists one cache record per provider under an output root.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache_store.go -destination=mocks/mock_cache_store.go -package=mocks
type CacheStore interface {
	// Path returns the cache file path for the provider.
	Path(root, providerID string) string

	// Load reads the provider's cache record.
	// Returns nil, nil if no cache file exists.
	Load(root, providerID string) (*domain.ProviderCache, error)

	// Save atomically replaces the provider's cache file.
	Save(root, providerID string, cache *domain.ProviderCache) error
}

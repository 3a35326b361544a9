package ports

import "go.trai.ch/datagen/internal/core/domain"

// Verifier compares a cache record against the files on disk.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type Verifier interface {
	// Verify returns the recorded outputs whose files are missing or changed, sorted by path.
	Verify(cache *domain.ProviderCache) ([]domain.Drift, error)
}

package ports

import (
	"context"

	"go.trai.ch/datagen/internal/core/domain"
)

// Provider is an independently identified unit of generation logic.
//
//go:generate go run go.uber.org/mock/mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks
type Provider interface {
	// ID returns the stable, globally unique provider id.
	ID() string

	// Run produces every output of the provider through out and returns once all
	// writes have completed. Run may fan out internally.
	Run(ctx context.Context, out CachedOutput) error
}

// ProviderFactory builds the providers declared by a configuration.
type ProviderFactory interface {
	// Providers returns the configured providers in run order.
	Providers(cfg *domain.Config) ([]Provider, error)
}

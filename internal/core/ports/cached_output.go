// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/datagen/internal/core/domain"

// CachedOutput is the write primitive handed to a provider for the duration of one run.
//
//go:generate go run go.uber.org/mock/mockgen -source=cached_output.go -destination=mocks/mock_cached_output.go -package=mocks
type CachedOutput interface {
	// WriteIfNeeded writes data to path unless the previous run recorded the same hash
	// for path and the file still exists. hash must be the content hash of data.
	//
	// It is safe to call concurrently for distinct paths.
	WriteIfNeeded(path string, data []byte, hash domain.Hash) error
}

package ports

import "go.trai.ch/datagen/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration. path is either a config file or a directory from
	// which datagen.yaml is searched upwards.
	Load(path string) (*domain.Config, error)
}

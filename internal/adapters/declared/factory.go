package declared

import (
	"runtime"

	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProviderFactory = (*Factory)(nil)

// Factory builds declared providers from the configuration.
type Factory struct{}

// NewFactory creates a new Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Providers returns one provider per configured provider, in configuration order.
// Two providers may not declare the same output path.
func (f *Factory) Providers(cfg *domain.Config) ([]ports.Provider, error) {
	jobs := cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	providers := make([]ports.Provider, 0, len(cfg.Providers))
	owners := make(map[string]string)
	for i := range cfg.Providers {
		p, err := newProvider(cfg.Root, jobs, &cfg.Providers[i])
		if err != nil {
			return nil, err
		}
		for _, o := range p.outputs {
			if owner, ok := owners[o.path]; ok {
				return nil, zerr.With(zerr.With(zerr.With(domain.ErrDuplicateOutput,
					"provider", p.id), "owner", owner), "path", o.path)
			}
			owners[o.path] = p.id
		}
		providers = append(providers, p)
	}
	return providers, nil
}

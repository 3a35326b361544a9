package hashcache

import (
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
)

// SaveStable renders v as stable JSON and writes it through out.
func SaveStable(out ports.CachedOutput, v any, path string) error {
	data, err := domain.StableJSON(v)
	if err != nil {
		return err
	}
	return out.WriteIfNeeded(path, data, domain.HashBytes(data))
}

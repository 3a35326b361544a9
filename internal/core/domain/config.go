package domain

import (
	"path/filepath"

	"go.trai.ch/zerr"
)

// Config is the resolved pipeline configuration.
type Config struct {
	// File is the configuration file the config was read from.
	File string
	// Root is the absolute output root.
	Root string
	// VersionTag identifies the generator version; a change forces every provider to rerun.
	VersionTag string
	// Jobs limits the fan-out inside a single provider. Zero means one per CPU.
	Jobs int
	// Providers lists the declared providers in run order.
	Providers []ProviderSpec
}

// Validate rejects an output root that contains the configuration file, since the
// purge would delete it along with every other unreferenced file.
func (c *Config) Validate() error {
	if c.File == "" || c.Root == "" {
		return nil
	}
	if Contains(c.Root, c.File) {
		return zerr.With(zerr.With(zerr.Wrap(ErrUnsafeRoot, "invalid output root"), "root", c.Root), "config", c.File)
	}
	return nil
}

// Contains reports whether path is dir itself or lies below it. Relative paths are
// resolved against the working directory first.
func Contains(dir, path string) bool {
	dir, path = absolute(dir), absolute(path)
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return filepath.IsLocal(rel) || rel == "."
}

func absolute(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// ProviderSpec declares one provider and the outputs it produces.
type ProviderSpec struct {
	ID        string
	Namespace string
	Outputs   []OutputSpec
}

// OutputSpec declares a single output file. Exactly one of Resource and Path is set.
// The content is JSON when JSON is non-nil, otherwise Content verbatim.
type OutputSpec struct {
	Resource string
	Kind     string
	Target   PackTarget
	Path     string
	JSON     any
	Content  string
}

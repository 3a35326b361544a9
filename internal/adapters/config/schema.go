package config

// Datagenfile represents the structure of the datagen.yaml configuration file.
type Datagenfile struct {
	Version   string        `yaml:"version"`
	Root      string        `yaml:"root"`
	Jobs      int           `yaml:"jobs"`
	Providers []ProviderDTO `yaml:"providers"`
}

// ProviderDTO represents a provider declaration.
type ProviderDTO struct {
	ID        string      `yaml:"id"`
	Namespace string      `yaml:"namespace"`
	Outputs   []OutputDTO `yaml:"outputs"`
}

// OutputDTO represents a single declared output file.
type OutputDTO struct {
	Resource string `yaml:"resource"`
	Kind     string `yaml:"kind"`
	Target   string `yaml:"target"`
	Path     string `yaml:"path"`
	JSON     any    `yaml:"json"`
	Content  string `yaml:"content"`
}

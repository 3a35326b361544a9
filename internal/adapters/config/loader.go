// Package config provides the configuration loader for datagen.
package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// DefaultRoot is the output root used when the config does not set one.
const DefaultRoot = "generated"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	fs afero.Fs
}

// NewLoader creates a new Loader reading from fsys.
func NewLoader(fsys afero.Fs) *Loader {
	return &Loader{fs: fsys}
}

// Load reads the configuration. path may name the config file directly or a
// directory from which datagen.yaml is searched upwards.
func (l *Loader) Load(path string) (*domain.Config, error) {
	configPath, err := l.findConfiguration(path)
	if err != nil {
		return nil, err
	}

	var file Datagenfile
	if err := l.readAndUnmarshalYAML(configPath, &file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := buildConfig(configPath, &file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func (l *Loader) findConfiguration(path string) (string, error) {
	isDir, err := afero.IsDir(l.fs, path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrConfigNotFound.Error()), "path", path)
	}
	if !isDir {
		return filepath.Clean(path), nil
	}

	currentDir := filepath.Clean(path)
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if exists, _ := afero.Exists(l.fs, candidate); exists {
			return candidate, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			break
		}
		currentDir = parentDir
	}

	return "", zerr.With(domain.ErrConfigNotFound, "cwd", path)
}

func (l *Loader) readAndUnmarshalYAML(configPath string, target *Datagenfile) error {
	data, err := afero.ReadFile(l.fs, configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if err := yaml.Unmarshal(data, target); err != nil {
		return zerr.Wrap(err, domain.ErrConfigParseFailed.Error())
	}
	return nil
}

func buildConfig(configPath string, file *Datagenfile) (*domain.Config, error) {
	if strings.TrimSpace(file.Version) == "" {
		return nil, domain.ErrMissingVersion
	}
	if file.Jobs < 0 {
		return nil, zerr.With(domain.ErrInvalidJobs, "jobs", file.Jobs)
	}

	cfg := &domain.Config{
		File:       configPath,
		Root:       resolveRoot(configPath, file.Root),
		VersionTag: file.Version,
		Jobs:       file.Jobs,
		Providers:  make([]domain.ProviderSpec, 0, len(file.Providers)),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(file.Providers))
	for i := range file.Providers {
		spec, err := buildProvider(&file.Providers[i])
		if err != nil {
			return nil, err
		}
		if seen[spec.ID] {
			return nil, zerr.With(domain.ErrDuplicateProvider, "provider", spec.ID)
		}
		seen[spec.ID] = true
		cfg.Providers = append(cfg.Providers, spec)
	}

	return cfg, nil
}

func buildProvider(dto *ProviderDTO) (domain.ProviderSpec, error) {
	if strings.TrimSpace(dto.ID) == "" {
		return domain.ProviderSpec{}, domain.ErrMissingProviderID
	}

	namespace := dto.Namespace
	if namespace == "" {
		namespace = domain.DefaultNamespace
	}

	spec := domain.ProviderSpec{
		ID:        dto.ID,
		Namespace: namespace,
		Outputs:   make([]domain.OutputSpec, 0, len(dto.Outputs)),
	}
	for i := range dto.Outputs {
		out, err := buildOutput(namespace, &dto.Outputs[i])
		if err != nil {
			return domain.ProviderSpec{}, zerr.With(zerr.With(err, "provider", dto.ID), "output", i)
		}
		spec.Outputs = append(spec.Outputs, out)
	}
	return spec, nil
}

func buildOutput(namespace string, dto *OutputDTO) (domain.OutputSpec, error) {
	if (dto.Resource == "") == (dto.Path == "") {
		return domain.OutputSpec{}, domain.ErrInvalidOutput
	}

	out := domain.OutputSpec{
		Resource: dto.Resource,
		Kind:     dto.Kind,
		Path:     dto.Path,
		JSON:     dto.JSON,
		Content:  dto.Content,
	}

	if dto.Path != "" {
		if !isLocalPath(dto.Path) {
			return domain.OutputSpec{}, zerr.With(domain.ErrInvalidOutputPath, "output_path", dto.Path)
		}
		if domain.IsReservedPath(dto.Path) {
			return domain.OutputSpec{}, zerr.With(domain.ErrReservedOutputPath, "output_path", dto.Path)
		}
		return out, nil
	}

	if dto.Kind == "" {
		return domain.OutputSpec{}, zerr.With(domain.ErrMissingKind, "resource", dto.Resource)
	}
	if !isLocalPath(dto.Kind) {
		return domain.OutputSpec{}, zerr.With(domain.ErrInvalidOutputPath, "kind", dto.Kind)
	}
	if _, err := domain.ParseResourceLocation(dto.Resource, namespace); err != nil {
		return domain.OutputSpec{}, err
	}

	target, err := domain.ParsePackTarget(dto.Target)
	if err != nil {
		return domain.OutputSpec{}, err
	}
	out.Target = target
	return out, nil
}

func isLocalPath(p string) bool {
	return filepath.IsLocal(filepath.FromSlash(p))
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		configuredRoot = DefaultRoot
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

package pipeline

import (
	"bytes"
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/zerr"
)

// manifest is the content of version.json at the top of the output root.
type manifest struct {
	Version   string   `json:"version"`
	Providers []string `json:"providers"`
}

// writeManifest writes version.json unless the file already holds the same bytes.
func writeManifest(fsys afero.Fs, root, versionTag string, ids []string) error {
	path := domain.ManifestPath(root)

	data, err := domain.StableJSON(manifest{Version: versionTag, Providers: ids})
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}

	if existing, err := afero.ReadFile(fsys, path); err == nil && bytes.Equal(existing, data) {
		return nil
	}

	if err := fsys.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	if err := afero.WriteFile(fsys, path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

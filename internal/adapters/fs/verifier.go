package fs

import (
	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/datagen/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Verifier = (*Verifier)(nil)

// Verifier checks recorded outputs against the files on disk.
type Verifier struct {
	fs     afero.Fs
	hasher *Hasher
}

// NewVerifier creates a new Verifier.
func NewVerifier(fsys afero.Fs, hasher *Hasher) *Verifier {
	return &Verifier{fs: fsys, hasher: hasher}
}

// Verify rehashes every output recorded in cache and returns the ones that drifted,
// sorted by path.
func (v *Verifier) Verify(cache *domain.ProviderCache) ([]domain.Drift, error) {
	var drifts []domain.Drift
	for _, entry := range cache.Entries() {
		exists, err := afero.Exists(v.fs, entry.Path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrOutputStatFailed.Error()), "path", entry.Path)
		}
		if !exists {
			drifts = append(drifts, domain.Drift{Path: entry.Path, Expected: entry.Hash, Missing: true})
			continue
		}

		actual, err := v.hasher.HashFile(entry.Path)
		if err != nil {
			return nil, err
		}
		if actual != entry.Hash {
			drifts = append(drifts, domain.Drift{Path: entry.Path, Expected: entry.Hash, Actual: actual})
		}
	}
	return drifts, nil
}

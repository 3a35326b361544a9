package fs

import (
	"crypto/sha1" //nolint:gosec // must match domain.HashBytes
	"io"

	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/zerr"
)

// Hasher computes content hashes of files on disk.
type Hasher struct {
	fs afero.Fs
}

// NewHasher creates a new Hasher.
func NewHasher(fsys afero.Fs) *Hasher {
	return &Hasher{fs: fsys}
}

// HashFile streams the file at path through the content hash.
// The result equals domain.HashBytes of the file's bytes.
func (h *Hasher) HashFile(path string) (domain.Hash, error) {
	var sum domain.Hash

	f, err := h.fs.Open(path)
	if err != nil {
		return sum, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	digest := sha1.New() //nolint:gosec // see import
	if _, err := io.Copy(digest, f); err != nil {
		return sum, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	copy(sum[:], digest.Sum(nil))
	return sum, nil
}

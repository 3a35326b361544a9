package fs

import (
	"iter"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.trai.ch/datagen/internal/core/ports"
)

var _ ports.FileWalker = (*Walker)(nil)

// Walker provides file walking functionality over an afero filesystem.
type Walker struct {
	fs afero.Fs
}

// NewWalker creates a new Walker.
func NewWalker(fsys afero.Fs) *Walker {
	return &Walker{fs: fsys}
}

// WalkFiles yields every non-directory entry under root, skipping .git, .jj and
// ignored directories. Paths include root. Errors for individual entries are yielded
// with the offending path and the walk continues past them.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = afero.Walk(w.fs, root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				if !yield(path, err) {
					return filepath.SkipAll
				}
				if info != nil && info.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Check if we should skip this directory
			if skipAction := w.shouldSkipDir(info, ignores); skipAction != nil {
				return skipAction
			}

			if info.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkipDir returns filepath.SkipDir for directories that must not be descended into.
func (w *Walker) shouldSkipDir(info os.FileInfo, ignores []string) error {
	if !info.IsDir() {
		return nil
	}
	name := info.Name()

	// Always skip VCS metadata
	if name == ".git" || name == ".jj" {
		return filepath.SkipDir
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return filepath.SkipDir
		}
	}

	return nil
}

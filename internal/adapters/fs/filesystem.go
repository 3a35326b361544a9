// Package fs provides file system adapters for walking, hashing and verifying outputs.
package fs

import "github.com/spf13/afero"

// NewOsFs returns the afero filesystem backed by the host OS.
func NewOsFs() afero.Fs {
	return afero.NewOsFs()
}

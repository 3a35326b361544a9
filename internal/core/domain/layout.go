package domain

import (
	"path/filepath"
	"strings"
)

const (
	// CacheDirName is the name of the per-provider cache directory inside the output root.
	CacheDirName = ".cache"

	// ManifestFileName is the run manifest written at the top of the output root.
	// It is not tracked by any provider but always survives the purge.
	ManifestFileName = "version.json"

	// ConfigFileName is the name of the pipeline configuration file.
	ConfigFileName = "datagen.yaml"

	// UnknownVersion is the version tag of a record that could not be loaded.
	UnknownVersion = "unknown"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// CacheDir returns the cache directory for the given output root.
func CacheDir(root string) string {
	return filepath.Join(root, CacheDirName)
}

// ManifestPath returns the path of the run manifest for the given output root.
func ManifestPath(root string) string {
	return filepath.Join(root, ManifestFileName)
}

// IsReservedPath reports whether rel, a path relative to the output root, names the
// run manifest or anything inside the cache directory. Providers must not write there.
func IsReservedPath(rel string) bool {
	rel = filepath.ToSlash(filepath.Clean(filepath.FromSlash(rel)))
	return rel == ManifestFileName || rel == CacheDirName || strings.HasPrefix(rel, CacheDirName+"/")
}

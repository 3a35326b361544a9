package ports

import "iter"

// FileWalker enumerates regular files below a directory.
//
//go:generate go run go.uber.org/mock/mockgen -source=walker.go -destination=mocks/mock_walker.go -package=mocks
type FileWalker interface {
	// WalkFiles yields every file path under root. Entries that cannot be read are
	// yielded with a non-nil error and the walk continues.
	WalkFiles(root string, ignores []string) iter.Seq2[string, error]
}

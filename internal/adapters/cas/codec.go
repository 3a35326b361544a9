package cas

import (
	"bufio"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/datagen/internal/core/domain"
	"go.trai.ch/zerr"
)

// HeaderMarker starts the first line of every cache file.
const HeaderMarker = "// "

// maxLineSize bounds a single cache line; output paths are far shorter in practice.
const maxLineSize = 1 << 20

type encodedEntry struct {
	rel  string
	hash domain.Hash
}

// Encode writes cache in the line format:
//
//	// <version>\t<timestamp>\t<provider id>
//	<hex hash> <path relative to root>
//
// Entries are sorted by their slash-separated relative path.
func Encode(w io.Writer, root, providerID string, cache *domain.ProviderCache, now time.Time) error {
	entries := make([]encodedEntry, 0, cache.Len())
	for _, e := range cache.Entries() {
		rel, err := relativeSlashPath(root, e.Path)
		if err != nil {
			return err
		}
		entries = append(entries, encodedEntry{rel: rel, hash: e.Hash})
	}
	slices.SortFunc(entries, func(a, b encodedEntry) int {
		return strings.Compare(a.rel, b.rel)
	})

	bw := bufio.NewWriter(w)
	_, _ = bw.WriteString(HeaderMarker)
	_, _ = bw.WriteString(cache.Version())
	_ = bw.WriteByte('\t')
	_, _ = bw.WriteString(now.UTC().Format(time.RFC3339))
	_ = bw.WriteByte('\t')
	_, _ = bw.WriteString(providerID)
	_ = bw.WriteByte('\n')

	for _, e := range entries {
		_, _ = bw.WriteString(e.hash.String())
		_ = bw.WriteByte(' ')
		_, _ = bw.WriteString(e.rel)
		_ = bw.WriteByte('\n')
	}

	return bw.Flush()
}

// Decode parses a cache file, resolving entry paths against root.
func Decode(r io.Reader, root string) (*domain.ProviderCache, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
		}
		return nil, domain.ErrCacheHeaderMissing
	}

	header := scanner.Text()
	rest, ok := strings.CutPrefix(header, HeaderMarker)
	if !ok {
		return nil, domain.ErrCacheHeaderMissing
	}
	version, _, _ := strings.Cut(rest, "\t")

	entries := make(map[string]domain.Hash)
	lineNo := 1
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		hexHash, rel, found := strings.Cut(line, " ")
		if !found || rel == "" {
			return nil, zerr.With(domain.ErrCacheLineMalformed, "line", lineNo)
		}

		hash, err := domain.ParseHash(hexHash)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheLineMalformed.Error()), "line", lineNo)
		}

		entries[filepath.Join(root, filepath.FromSlash(rel))] = hash
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrCacheReadFailed.Error())
	}

	return domain.NewProviderCache(version, entries), nil
}

func relativeSlashPath(root, path string) (string, error) {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrOutputOutsideRoot.Error()), "path", path)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", zerr.With(domain.ErrOutputOutsideRoot, "path", path)
	}
	return filepath.ToSlash(rel), nil
}

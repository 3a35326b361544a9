package fs_test

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/datagen/internal/adapters/fs"
	"go.trai.ch/datagen/internal/core/domain"
)

func collect(t *testing.T, w *fs.Walker, root string, ignores []string) []string {
	t.Helper()
	files := make([]string, 0)
	for path, err := range w.WalkFiles(root, ignores) {
		require.NoError(t, err)
		files = append(files, path)
	}
	return files
}

func TestWalker_WalkFiles(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/out/file1.txt", []byte("content1"), 0o600))
	require.NoError(t, afero.WriteFile(mem, "/out/dir1/file2.txt", []byte("content2"), 0o600))
	require.NoError(t, afero.WriteFile(mem, "/out/dir2/file3.txt", []byte("content3"), 0o600))

	files := collect(t, fs.NewWalker(mem), "/out", nil)

	assert.Len(t, files, 3)
	assert.Contains(t, files, filepath.Join("/out", "file1.txt"))
	assert.Contains(t, files, filepath.Join("/out", "dir1", "file2.txt"))
	assert.Contains(t, files, filepath.Join("/out", "dir2", "file3.txt"))
}

func TestWalker_WalkFiles_SkipsGitAndJJ(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/out/.git/config", []byte("gitconfig"), 0o600))
	require.NoError(t, afero.WriteFile(mem, "/out/.jj/store", []byte("jjstore"), 0o600))
	require.NoError(t, afero.WriteFile(mem, "/out/data/a.json", []byte("{}"), 0o600))

	files := collect(t, fs.NewWalker(mem), "/out", nil)

	assert.Equal(t, []string{filepath.Join("/out", "data", "a.json")}, files)
}

func TestWalker_WalkFiles_WithIgnores(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/out/keep/a.json", []byte("{}"), 0o600))
	require.NoError(t, afero.WriteFile(mem, "/out/build/output.bin", []byte("binary"), 0o600))

	files := collect(t, fs.NewWalker(mem), "/out", []string{"build"})

	assert.Equal(t, []string{filepath.Join("/out", "keep", "a.json")}, files)
}

func TestWalker_WalkFiles_RealDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	osFs := fs.NewOsFs()
	require.NoError(t, osFs.MkdirAll(filepath.Join(tmpDir, "a"), 0o750))
	require.NoError(t, afero.WriteFile(osFs, filepath.Join(tmpDir, "a", "b.json"), []byte("{}"), 0o600))

	files := collect(t, fs.NewWalker(osFs), tmpDir, nil)

	assert.Equal(t, []string{filepath.Join(tmpDir, "a", "b.json")}, files)
}

func TestWalker_WalkFiles_MissingRoot(t *testing.T) {
	mem := afero.NewMemMapFs()

	var errs int
	for _, err := range fs.NewWalker(mem).WalkFiles("/missing", nil) {
		if err != nil {
			errs++
		}
	}
	assert.Equal(t, 1, errs)
}

func TestHasher_HashFile(t *testing.T) {
	mem := afero.NewMemMapFs()
	content := []byte(`{"parent": "block/cube_all"}`)
	require.NoError(t, afero.WriteFile(mem, "/out/a.json", content, 0o600))

	got, err := fs.NewHasher(mem).HashFile("/out/a.json")
	require.NoError(t, err)
	assert.Equal(t, domain.HashBytes(content), got)

	_, err = fs.NewHasher(mem).HashFile("/out/missing.json")
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to open file")
}

func TestVerifier_Verify(t *testing.T) {
	mem := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(mem, "/out/ok.json", []byte("ok"), 0o600))
	require.NoError(t, afero.WriteFile(mem, "/out/edited.json", []byte("edited"), 0o600))

	cache := domain.NewProviderCache("1.0", map[string]domain.Hash{
		"/out/ok.json":      domain.HashBytes([]byte("ok")),
		"/out/edited.json":  domain.HashBytes([]byte("original")),
		"/out/missing.json": domain.HashBytes([]byte("gone")),
	})

	verifier := fs.NewVerifier(mem, fs.NewHasher(mem))
	drifts, err := verifier.Verify(cache)
	require.NoError(t, err)

	require.Len(t, drifts, 2)
	assert.Equal(t, "/out/edited.json", drifts[0].Path)
	assert.False(t, drifts[0].Missing)
	assert.Equal(t, domain.HashBytes([]byte("edited")), drifts[0].Actual)
	assert.Equal(t, "/out/missing.json", drifts[1].Path)
	assert.True(t, drifts[1].Missing)
}

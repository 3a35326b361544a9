package cas_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/datagen/internal/adapters/cas"
	"go.trai.ch/datagen/internal/core/domain"
)

var fixedNow = time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

func TestEncode_Format(t *testing.T) {
	root := filepath.Join("/", "out")
	hashB := domain.HashBytes([]byte("b"))
	hashA := domain.HashBytes([]byte("a"))

	cache := domain.NewProviderCache("1.20.1", map[string]domain.Hash{
		filepath.Join(root, "data", "z", "b.json"): hashB,
		filepath.Join(root, "assets", "a.json"):    hashA,
	})

	var buf bytes.Buffer
	require.NoError(t, cas.Encode(&buf, root, "Block States: example", cache, fixedNow))

	expected := "// 1.20.1\t2024-05-01T12:30:00Z\tBlock States: example\n" +
		hashA.String() + " assets/a.json\n" +
		hashB.String() + " data/z/b.json\n"
	assert.Equal(t, expected, buf.String())
}

func TestEncode_RejectsPathOutsideRoot(t *testing.T) {
	cache := domain.NewProviderCache("1", map[string]domain.Hash{
		filepath.Join("/", "elsewhere", "a.json"): domain.HashBytes(nil),
	})

	var buf bytes.Buffer
	err := cas.Encode(&buf, filepath.Join("/", "out"), "p", cache, fixedNow)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrOutputOutsideRoot.Error())
}

func TestDecode(t *testing.T) {
	root := filepath.Join("/", "out")
	hashA := domain.HashBytes([]byte("a"))
	hashB := domain.HashBytes([]byte("b"))

	t.Run("parses header and entries", func(t *testing.T) {
		input := "// 1.20.1\t2024-05-01T12:30:00Z\tblocks\n" +
			hashA.String() + " assets/a.json\n" +
			hashB.String() + " data/with space/b.json\n"

		cache, err := cas.Decode(strings.NewReader(input), root)
		require.NoError(t, err)

		assert.Equal(t, "1.20.1", cache.Version())
		assert.Equal(t, 2, cache.Len())
		got, ok := cache.Get(filepath.Join(root, "assets", "a.json"))
		require.True(t, ok)
		assert.Equal(t, hashA, got)
		got, ok = cache.Get(filepath.Join(root, "data", "with space", "b.json"))
		require.True(t, ok)
		assert.Equal(t, hashB, got)
	})

	t.Run("version without tab", func(t *testing.T) {
		cache, err := cas.Decode(strings.NewReader("// 2.0\n"), root)
		require.NoError(t, err)
		assert.Equal(t, "2.0", cache.Version())
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("uppercase hex is accepted", func(t *testing.T) {
		input := "// 1\tx\n" + strings.ToUpper(hashA.String()) + " a.json\n"
		cache, err := cas.Decode(strings.NewReader(input), root)
		require.NoError(t, err)
		got, _ := cache.Get(filepath.Join(root, "a.json"))
		assert.Equal(t, hashA, got)
	})

	tests := []struct {
		name    string
		input   string
		errText string
	}{
		{name: "empty file", input: "", errText: domain.ErrCacheHeaderMissing.Error()},
		{name: "missing marker", input: "1.20.1\tblocks\n", errText: domain.ErrCacheHeaderMissing.Error()},
		{name: "line without separator", input: "// 1\tx\n" + hashA.String() + "\n", errText: domain.ErrCacheLineMalformed.Error()},
		{name: "empty path", input: "// 1\tx\n" + hashA.String() + " \n", errText: domain.ErrCacheLineMalformed.Error()},
		{name: "bad hex", input: "// 1\tx\nnothex a.json\n", errText: domain.ErrCacheLineMalformed.Error()},
		{name: "blank line", input: "// 1\tx\n\n", errText: domain.ErrCacheLineMalformed.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cas.Decode(strings.NewReader(tt.input), root)
			require.Error(t, err)
			assert.ErrorContains(t, err, tt.errText)
		})
	}
}

func TestEncodeDecode_PreservesRecord(t *testing.T) {
	root := filepath.Join("/", "out")
	original := domain.NewProviderCache("3.1", map[string]domain.Hash{
		filepath.Join(root, "data", "ns", "recipes", "stick.json"): domain.HashBytes([]byte("stick")),
		filepath.Join(root, "version-less.txt"):                    domain.HashBytes([]byte("x")),
	})

	var buf bytes.Buffer
	require.NoError(t, cas.Encode(&buf, root, "recipes", original, fixedNow))

	decoded, err := cas.Decode(&buf, root)
	require.NoError(t, err)
	assert.True(t, original.Equal(decoded))
}

func blocksCache(root string) *domain.ProviderCache {
	outputs := map[string]string{
		"assets/example/blockstates/stone.json":     "{\n  \"variants\": {\n    \"\": {\n      \"model\": \"example:block/stone\"\n    }\n  }\n}\n",
		"assets/example/models/block/stone.json":    "{\n  \"parent\": \"block/cube_all\"\n}\n",
		"data/example/loot_table/blocks/stone.json": "{\n  \"type\": \"block\"\n}\n",
	}

	entries := make(map[string]domain.Hash, len(outputs))
	for rel, content := range outputs {
		entries[filepath.Join(root, filepath.FromSlash(rel))] = domain.HashBytes([]byte(content))
	}
	return domain.NewProviderCache("1.4.0", entries)
}

func TestEncode_Golden(t *testing.T) {
	root := filepath.Join("/", "out")

	tests := []struct {
		name       string
		providerID string
		cache      *domain.ProviderCache
	}{
		{name: "cache_blocks", providerID: "blocks", cache: blocksCache(root)},
		{name: "cache_empty", providerID: "items", cache: domain.NewProviderCache("1.4.0", nil)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, cas.Encode(&buf, root, tt.providerID, tt.cache, fixedNow))

			g := goldie.New(t)
			g.Assert(t, tt.name, buf.Bytes())
		})
	}
}

func TestDecode_Golden(t *testing.T) {
	root := filepath.Join("/", "out")

	data, err := os.ReadFile(filepath.Join("testdata", "cache_blocks.golden"))
	require.NoError(t, err)

	cache, err := cas.Decode(bytes.NewReader(data), root)
	require.NoError(t, err)
	assert.True(t, blocksCache(root).Equal(cache))
}

package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/datagen/internal/core/domain"
)

func TestParseResourceLocation(t *testing.T) {
	tests := []struct {
		input   string
		def     string
		want    domain.ResourceLocation
		wantErr bool
	}{
		{input: "stone", def: "mymod", want: domain.ResourceLocation{Namespace: "mymod", Path: "stone"}},
		{input: "minecraft:block/stone", def: "mymod", want: domain.ResourceLocation{Namespace: "minecraft", Path: "block/stone"}},
		{input: ":stone", def: "mymod", want: domain.ResourceLocation{Namespace: domain.DefaultNamespace, Path: "stone"}},
		{input: "stone", def: "", want: domain.ResourceLocation{Namespace: domain.DefaultNamespace, Path: "stone"}},
		{input: "Stone", def: "mymod", wantErr: true},
		{input: "ns:a/../b", def: "mymod", wantErr: true},
		{input: "ns:a//b", def: "mymod", wantErr: true},
		{input: "ns:", def: "mymod", wantErr: true},
		{input: "bad ns:stone", def: "mymod", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := domain.ParseResourceLocation(tt.input, tt.def)
			if tt.wantErr {
				assert.ErrorContains(t, err, domain.ErrInvalidResourceLocation.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResourceLocation_String(t *testing.T) {
	loc := domain.ResourceLocation{Namespace: "minecraft", Path: "block/stone"}
	assert.Equal(t, "minecraft:block/stone", loc.String())
}

func TestParsePackTarget(t *testing.T) {
	got, err := domain.ParsePackTarget("")
	require.NoError(t, err)
	assert.Equal(t, domain.TargetData, got)

	got, err = domain.ParsePackTarget("assets")
	require.NoError(t, err)
	assert.Equal(t, domain.TargetAssets, got)

	_, err = domain.ParsePackTarget("resources")
	assert.ErrorContains(t, err, domain.ErrInvalidPackTarget.Error())
}

func TestPathProvider(t *testing.T) {
	root := filepath.Join("/", "out")
	loc := domain.ResourceLocation{Namespace: "minecraft", Path: "block/stone"}

	blockstates := domain.NewPathProvider(root, domain.TargetAssets, "blockstates")
	assert.Equal(t,
		filepath.Join(root, "assets", "minecraft", "blockstates", "block", "stone.json"),
		blockstates.JSON(loc))

	tags := domain.NewPathProvider(root, domain.TargetData, "tags/blocks")
	assert.Equal(t,
		filepath.Join(root, "data", "minecraft", "tags", "blocks", "block", "stone.mcmeta"),
		tags.File(loc, "mcmeta"))
}

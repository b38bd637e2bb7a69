package cache_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"oraculus/internal/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFileCache_SetGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choice_cache.json")
	c := cache.NewFileCache(path, zap.NewNop())
	ctx := context.Background()

	_, ok := c.Get(ctx, "start_female_adult")
	assert.False(t, ok)

	choices := []string{"Open the chest", "Leave quietly", "Call out"}
	require.NoError(t, c.Set(ctx, "start_female_adult", choices))

	got, ok := c.Get(ctx, "start_female_adult")
	require.True(t, ok)
	assert.Equal(t, choices, got)
}

func TestFileCache_WriteThroughSurvivesRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choice_cache.json")
	ctx := context.Background()

	first := cache.NewFileCache(path, zap.NewNop())
	require.NoError(t, first.Set(ctx, "dark_path_male_young", []string{"a", "b", "c"}))

	// A fresh instance over the same file must see the entry.
	second := cache.NewFileCache(path, zap.NewNop())
	got, ok := second.Get(ctx, "dark_path_male_young")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestFileCache_SetOverwritesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choice_cache.json")
	c := cache.NewFileCache(path, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []string{"old one", "old two"}))
	require.NoError(t, c.Set(ctx, "k", []string{"new one"}))

	got, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []string{"new one"}, got)
}

func TestFileCache_CorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "choice_cache.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	c := cache.NewFileCache(path, zap.NewNop())
	assert.Equal(t, 0, c.Len())

	// The cache must remain usable after degrading.
	require.NoError(t, c.Set(context.Background(), "k", []string{"x", "y", "z"}))
	got, ok := c.Get(context.Background(), "k")
	require.True(t, ok)
	assert.Len(t, got, 3)
}

func TestFileCache_RejectsEmptyInput(t *testing.T) {
	c := cache.NewFileCache(filepath.Join(t.TempDir(), "c.json"), zap.NewNop())
	assert.Error(t, c.Set(context.Background(), "", []string{"a"}))
	assert.Error(t, c.Set(context.Background(), "k", nil))
}

func TestFileCache_GetReturnsCopy(t *testing.T) {
	c := cache.NewFileCache(filepath.Join(t.TempDir(), "c.json"), zap.NewNop())
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []string{"a", "b"}))

	got, _ := c.Get(ctx, "k")
	got[0] = "mutated"

	again, _ := c.Get(ctx, "k")
	assert.Equal(t, "a", again[0])
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"
)

// FileCache is the default ChoiceCache backend: a single human-inspectable
// JSON file, loaded fully at startup and rewritten fully on every Set.
type FileCache struct {
	path    string
	entries map[string][]string
	logger  *zap.Logger
}

var _ ChoiceCache = (*FileCache)(nil)

// NewFileCache loads the cache file at path. A missing or corrupt file
// degrades to an empty cache with a warning; the engine stays usable with
// zero cache hits.
func NewFileCache(path string, logger *zap.Logger) *FileCache {
	c := &FileCache{
		path:    path,
		entries: make(map[string][]string),
		logger:  logger.Named("FileCache"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			c.logger.Warn("Could not read choice cache file, starting empty",
				zap.String("path", path), zap.Error(err))
		}
		return c
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.logger.Warn("Choice cache file is corrupt, starting empty",
			zap.String("path", path), zap.Error(err))
		c.entries = make(map[string][]string)
		return c
	}
	c.logger.Info("Choice cache loaded",
		zap.String("path", path), zap.Int("entries", len(c.entries)))
	return c
}

// Get returns the cached choices for key.
func (c *FileCache) Get(_ context.Context, key string) ([]string, bool) {
	choices, ok := c.entries[key]
	if !ok || len(choices) == 0 {
		return nil, false
	}
	out := make([]string, len(choices))
	copy(out, choices)
	return out, true
}

// Set stores choices under key and rewrites the backing file.
func (c *FileCache) Set(_ context.Context, key string, choices []string) error {
	if key == "" {
		return fmt.Errorf("cache key is required")
	}
	if len(choices) == 0 {
		return fmt.Errorf("refusing to cache an empty choice list for key %q", key)
	}

	stored := make([]string, len(choices))
	copy(stored, choices)
	c.entries[key] = stored

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal choice cache: %w", err)
	}
	if err := os.WriteFile(c.path, data, 0o644); err != nil {
		// Storage failure is non-fatal for the caller: the in-memory entry
		// stays, only persistence across restart is lost.
		c.logger.Warn("Could not save choice cache file",
			zap.String("path", c.path), zap.Error(err))
		return fmt.Errorf("write choice cache file: %w", err)
	}
	return nil
}

// Len reports the number of cached entries.
func (c *FileCache) Len() int {
	return len(c.entries)
}

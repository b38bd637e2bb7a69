// Package cache stores generated choice lists keyed by
// (node identity x attribute bucket). Entries are overwritten wholesale on
// re-generation and never evicted: the key space is bounded by the number
// of distinct nodes times 3 gender buckets times 4 age buckets.
package cache

import "context"

// ChoiceCache is the persistent key -> choice-list store consulted by the
// narrative tree before it falls back to generation.
type ChoiceCache interface {
	// Get returns the cached choices for key, or (nil, false) on a miss.
	Get(ctx context.Context, key string) ([]string, bool)
	// Set persists choices under key immediately (write-through).
	Set(ctx context.Context, key string, choices []string) error
}

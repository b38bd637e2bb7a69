package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// redisKeyPrefix namespaces engine entries inside a shared Redis instance.
const redisKeyPrefix = "oraculus:choices:"

// RedisCache is an alternative ChoiceCache backend for server deployments
// where several engine instances share one cache. Entries are stored as
// JSON arrays without TTL; the key space is bounded, so nothing expires.
type RedisCache struct {
	client *redis.Client
	logger *zap.Logger
}

var _ ChoiceCache = (*RedisCache)(nil)

// NewRedisCache pings the Redis server once so that a misconfigured
// address fails at construction instead of on the first lookup.
func NewRedisCache(ctx context.Context, client *redis.Client, logger *zap.Logger) (*RedisCache, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisCache{
		client: client,
		logger: logger.Named("RedisCache"),
	}, nil
}

// Get returns the cached choices for key. Transport errors degrade to a
// cache miss with a warning, matching the file backend's behavior.
func (c *RedisCache) Get(ctx context.Context, key string) ([]string, bool) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Redis lookup failed, treating as cache miss",
				zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var choices []string
	if err := json.Unmarshal(data, &choices); err != nil {
		c.logger.Warn("Corrupt cache entry in Redis, treating as cache miss",
			zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if len(choices) == 0 {
		return nil, false
	}
	return choices, true
}

// Set stores choices under key with no expiry.
func (c *RedisCache) Set(ctx context.Context, key string, choices []string) error {
	if key == "" {
		return fmt.Errorf("cache key is required")
	}
	if len(choices) == 0 {
		return fmt.Errorf("refusing to cache an empty choice list for key %q", key)
	}

	data, err := json.Marshal(choices)
	if err != nil {
		return fmt.Errorf("marshal choices: %w", err)
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("store choices in redis: %w", err)
	}
	return nil
}

package carrier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RankCache stores computed recommendations keyed by query.
type RankCache interface {
	Get(ctx context.Context, key string) (*Recommendation, bool, error)
	Set(ctx context.Context, key string, rec *Recommendation) error
	// Flush drops every cached recommendation. Called after profiles change.
	Flush(ctx context.Context) error
}

// CacheKey returns the cache key of a query.
func CacheKey(q Query) string {
	names := make([]string, len(q.Priorities))
	for i, p := range q.Priorities {
		names[i] = string(p)
	}
	return fmt.Sprintf("%s|%s|%s|%s", q.Origin, q.Destination, strings.Join(names, ","), q.Fragility)
}

// RedisCacheConfig holds configuration for the Redis recommendation cache.
type RedisCacheConfig struct {
	Client *redis.Client
	// Prefix namespaces cache keys (default: "logisticsnet:rank:").
	Prefix string
	// TTL bounds how long a recommendation is served (default: 10m).
	TTL time.Duration
}

// RedisCache is a Redis implementation of RankCache.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a Redis-backed recommendation cache.
func NewRedisCache(cfg RedisCacheConfig) *RedisCache {
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "logisticsnet:rank:"
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: cfg.Client, prefix: prefix, ttl: ttl}
}

// Get returns the cached recommendation for key. A miss is not an error.
func (c *RedisCache) Get(ctx context.Context, key string) (*Recommendation, bool, error) {
	val, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var rec Recommendation
	if err := json.Unmarshal(val, &rec); err != nil {
		return nil, false, fmt.Errorf("decode cached recommendation: %w", err)
	}
	return &rec, true, nil
}

// Set stores a recommendation under key with the configured TTL.
func (c *RedisCache) Set(ctx context.Context, key string, rec *Recommendation) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode recommendation: %w", err)
	}
	return c.client.Set(ctx, c.prefix+key, data, c.ttl).Err()
}

// Flush deletes every key under the cache prefix.
func (c *RedisCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

var _ RankCache = (*RedisCache)(nil)

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache is a Cache backed by redis. InvalidateAll bumps a generation
// counter instead of scanning keys; entries of old generations simply expire.
type RedisCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache creates a redis-backed cache from a redis URL.
func NewRedisCache(redisURL, prefix string, ttl time.Duration) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	return &RedisCache{
		client: redis.NewClient(opt),
		prefix: prefix,
		ttl:    ttl,
	}, nil
}

// NewRedisCacheFromClient creates a redis-backed cache from an existing client.
// Used in tests with miniredis.
func NewRedisCacheFromClient(client *redis.Client, prefix string, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) generation(ctx context.Context) int64 {
	gen, err := c.client.Get(ctx, c.prefix+":gen").Int64()
	if err != nil {
		return 0
	}
	return gen
}

func (c *RedisCache) key(ctx context.Context, key string) string {
	return fmt.Sprintf("%s:%d:%s", c.prefix, c.generation(ctx), key)
}

// Get returns the cached value if present in the current generation.
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	value, err := c.client.Get(ctx, c.key(ctx, key)).Bytes()
	if err != nil {
		return nil, false
	}
	return value, true
}

// Set stores the value in the current generation with the cache TTL.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	// Best effort: a failed cache write only costs a future re-read.
	_ = c.client.Set(ctx, c.key(ctx, key), value, c.ttl).Err()
}

// InvalidateAll moves to the next generation, orphaning all current entries.
func (c *RedisCache) InvalidateAll(ctx context.Context) {
	_ = c.client.Incr(ctx, c.prefix+":gen").Err()
}

// Close releases the underlying redis client.
func (c *RedisCache) Close() error {
	return c.client.Close()
}

// Compile-time check that RedisCache implements Cache.
var _ Cache = (*RedisCache)(nil)

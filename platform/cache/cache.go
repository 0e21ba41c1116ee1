// Package cache provides the TTL read cache used by repositories.
// The cache is an explicit injected dependency, never module-level state,
// so tests can construct independent instances.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache stores serialized query results under string keys with a TTL.
// Any repository write calls InvalidateAll: correctness over cache efficiency.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
	InvalidateAll(ctx context.Context)
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-process Cache implementation.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration

	// now is swappable in tests.
	now func() time.Time
}

// NewMemoryCache creates a memory cache with the given TTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached value if present and not expired. An expired entry
// is deleted on the spot so misses do not accumulate memory.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; Set may have refreshed the entry.
		if current, still := c.entries[key]; still && c.now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.value, true
}

// Set stores the value under key with the cache TTL. Expired entries are
// swept here too: list caches see many distinct filter keys between writes,
// and keys that are never read again would otherwise linger.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = memoryEntry{value: value, expiresAt: now.Add(c.ttl)}
}

// InvalidateAll drops every entry.
func (c *MemoryCache) InvalidateAll(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]memoryEntry)
}

// Compile-time check that MemoryCache implements Cache.
var _ Cache = (*MemoryCache)(nil)

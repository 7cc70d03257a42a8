package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/vpetrenko/specsheet/internal/model"
)

// MemoryCache implements in-memory record caching with TTL expiry.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache.
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a record set from the cache.
func (c *MemoryCache) Get(key string) ([]model.Record, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]model.Record), true
	}
	return nil, false
}

// Set stores a record set in the cache with the given TTL.
func (c *MemoryCache) Set(key string, records []model.Record, ttl time.Duration) {
	c.cache.Set(key, records, ttl)
}

// Delete removes a record set from the cache.
func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Clear removes all record sets from the cache.
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}

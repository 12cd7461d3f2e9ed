package cache

import (
	"context"
	"sync"
	"time"

	"github.com/shopsense/backend/internal/domain"
)

// cacheItem is one cached pipeline result with its expiration
type cacheItem struct {
	result     *domain.SearchResult
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache of pipeline results with TTL
// support. Offers never outlive a pipeline call in the core; the cache holds
// completed SearchResults only, keyed by (item, retailer, sort).
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache and starts its cleanup loop
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	go cache.cleanupExpired()

	return cache
}

// Get retrieves a cached result
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.SearchResult, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.result, nil
}

// Set stores a result with the given TTL
func (c *MemoryCache) Set(ctx context.Context, key string, value *domain.SearchResult, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		result:     value,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a cached result
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// cleanupExpired removes expired entries periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of cached results
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

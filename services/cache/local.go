package cache

import (
	"sync"
	"time"
)

type localItem struct {
	value     []byte
	expiresAt time.Time
}

// LocalCache is an in-process CacheService used when no memcache address is
// configured. Entries are evicted lazily on access.
type LocalCache struct {
	mu    sync.Mutex
	items map[string]localItem
}

var _ CacheService = (*LocalCache)(nil)

// NewLocalCache creates a new in-process cache
func NewLocalCache() *LocalCache {
	return &LocalCache{items: make(map[string]localItem)}
}

// Get retrieves a value, treating expired entries as misses
func (c *LocalCache) Get(key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.items[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if time.Now().After(item.expiresAt) {
		delete(c.items, key)
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

// Set stores a value with an expiration time
func (c *LocalCache) Set(key string, value []byte, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = localItem{
		value:     value,
		expiresAt: time.Now().Add(expiration),
	}
	return nil
}

// Delete removes a value
func (c *LocalCache) Delete(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

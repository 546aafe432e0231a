// Package idempotency tracks create requests by client-supplied key so a
// retried create returns the original event instead of storing a duplicate.
package idempotency

import (
	"context"
	"sync"
	"sync/atomic"
)

// Cache records idempotency keys and the event ID each one produced.
type Cache interface {
	// Lookup returns the event ID recorded for key and whether it exists.
	Lookup(ctx context.Context, key string) (string, bool)

	// Record stores key -> eventID, evicting the oldest entry when full.
	Record(ctx context.Context, key, eventID string)

	// Forget drops key, allowing a later create under the same key to
	// proceed. Used when the recorded event no longer exists.
	Forget(ctx context.Context, key string)

	Size() int64
}

// inMemoryCache implements Cache with a map plus a FIFO order list for
// bounded eviction. For maxSize <= 0 the cache is unbounded.
type inMemoryCache struct {
	mu      sync.RWMutex
	byKey   map[string]string
	order   []string // insertion order, oldest first; only kept in bounded mode
	maxSize int
	size    atomic.Int64
}

// NewInMemoryCache creates an idempotency cache with configuration options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{
		maxSize: 10000, // default max size
	}

	for _, opt := range opts {
		opt(c)
	}

	c.byKey = make(map[string]string)
	if c.maxSize > 0 {
		c.order = make([]string, 0, c.maxSize)
	}

	return c
}

// Lookup returns the event ID recorded for key.
func (c *inMemoryCache) Lookup(ctx context.Context, key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	id, ok := c.byKey[key]
	return id, ok
}

// Record stores key -> eventID. Re-recording an existing key overwrites the
// event ID without changing its eviction position.
func (c *inMemoryCache) Record(ctx context.Context, key, eventID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byKey[key]; exists {
		c.byKey[key] = eventID
		return
	}

	if c.maxSize > 0 && len(c.byKey) >= c.maxSize {
		c.evictOldest()
	}

	c.byKey[key] = eventID
	if c.maxSize > 0 {
		c.order = append(c.order, key)
	}
	c.size.Add(1)
}

// Forget drops key from the cache.
func (c *inMemoryCache) Forget(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byKey[key]; !exists {
		return
	}

	delete(c.byKey, key)
	c.size.Add(-1)

	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// evictOldest removes the oldest live entry. Must be called with c.mu held.
func (c *inMemoryCache) evictOldest() {
	for len(c.order) > 0 {
		key := c.order[0]
		c.order = c.order[1:]
		if _, exists := c.byKey[key]; exists {
			delete(c.byKey, key)
			c.size.Add(-1)
			return
		}
	}
}

// Size returns the current number of entries in the cache.
func (c *inMemoryCache) Size() int64 {
	return c.size.Load()
}

package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type cacheEntry[T any] struct {
	value T
	built time.Time
}

// Cache holds values built from expensive listings, keyed by string, for a TTL.
// Concurrent misses for the same key share a single build.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry[T]
	sf      singleflight.Group
	ttl     time.Duration
	now     func() time.Time
}

// NewCache creates a cache. A zero ttl disables caching: every call builds.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]cacheEntry[T]),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *Cache[T]) fresh(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.ttl == 0 || c.now().Sub(e.built) > c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// GetOrBuild returns the cached value for key or builds a new one.
// Uses singleflight to prevent cache stampedes.
func (c *Cache[T]) GetOrBuild(ctx context.Context, key string, build func(context.Context) (T, error)) (T, error) {
	if v, ok := c.fresh(key); ok {
		return v, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		if v, ok := c.fresh(key); ok {
			return v, nil
		}
		v, err := build(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result.(T), nil
}

// Set stores value under key as freshly built.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	c.entries[key] = cacheEntry[T]{value: value, built: c.now()}
	c.mu.Unlock()
}

// Invalidate removes key from the cache.
func (c *Cache[T]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

package cache

import (
	"sync"
	"time"
)

type cacheItem[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiration
}

func (item cacheItem[V]) expired(now time.Time) bool {
	return !item.expiresAt.IsZero() && now.After(item.expiresAt)
}

// Cache is a thread-safe, generic cache with TTL support. Expired items are
// dropped lazily on access.
type Cache[K comparable, V any] struct {
	mu         sync.Mutex
	items      map[K]cacheItem[V]
	defaultTTL time.Duration
	now        func() time.Time
}

// Option is a functional option type for Cache configuration.
type Option[K comparable, V any] func(*Cache[K, V])

// WithDefaultTTL sets the Time-To-Live for loaded items.
// Zero keeps items forever.
func WithDefaultTTL[K comparable, V any](ttl time.Duration) Option[K, V] {
	return func(c *Cache[K, V]) {
		c.defaultTTL = ttl
	}
}

func NewCache[K comparable, V any](opts ...Option[K, V]) *Cache[K, V] {
	c := &Cache[K, V]{
		items: make(map[K]cacheItem[V]),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Cache[K, V]) getLocked(k K) (V, bool) {
	item, ok := c.items[k]
	if !ok {
		var zero V
		return zero, false
	}
	if item.expired(c.now()) {
		delete(c.items, k)
		var zero V
		return zero, false
	}
	return item.value, true
}

// GetOrLoad returns the cached value for k, calling load on a miss. Errors
// from load are not cached. The lock is held while load runs, so concurrent
// callers for any key wait for it.
func (c *Cache[K, V]) GetOrLoad(k K, load func() (V, error)) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.getLocked(k); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	item := cacheItem[V]{value: v}
	if c.defaultTTL > 0 {
		item.expiresAt = c.now().Add(c.defaultTTL)
	}
	c.items[k] = item
	return v, nil
}

package papertrade

import (
	"sync"
	"time"
)

// Cache is a small TTL cache shared between concurrent readers and writers.
//
// A Get is a hit only while the entry is younger than the TTL; a stale entry
// behaves exactly like a missing one and is simply overwritten by the next
// Set. There is no background eviction: for the fixed market basket the map
// stays bounded, and user-searched symbols are bounded by the symbol length
// validation upstream.
//
// The lock is scoped to the map access only. Callers must fetch replacement
// values outside any Cache call, so a slow upstream fetch for one key never
// blocks a lookup for another; two concurrent misses racing to Set the same
// key resolve last-write-wins.
type Cache[T any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time // replaced in tests
	entries map[string]cacheEntry[T]
}

type cacheEntry[T any] struct {
	value      T
	insertedAt time.Time
}

// NewCache creates an empty cache whose entries expire after ttl.
func NewCache[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry[T]),
	}
}

// Get returns the cached value for key and whether it is still fresh.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.insertedAt) >= c.ttl {
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key, overwriting any previous entry.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry[T]{value: value, insertedAt: c.now()}
}

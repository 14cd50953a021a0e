package store

import (
	"sort"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a fixed-window cache for the values read from the worksheets. Entries expire a fixed
// TTL after they were stored and the number of entries is capped, with the least recently used
// entry evicted to make room for a new one. A TTL of 0 disables caching.
type Cache struct {
	ttl     time.Duration
	entries *expirable.LRU[string, any]
}

func NewCache(ttl time.Duration, size int) *Cache {
	if size < 1 {
		size = 1
	}

	return &Cache{
		ttl:     ttl,
		entries: expirable.NewLRU[string, any](size, nil, ttl),
	}
}

// Get returns the cached value for key if it was stored less than the TTL ago.
func (c *Cache) Get(key string) (any, bool) {
	return c.entries.Get(key)
}

// Put stores a value, replacing any existing entry for the key and restarting its TTL.
func (c *Cache) Put(key string, value any) {
	if c.ttl > 0 {
		c.entries.Add(key, value)
	}
}

// Invalidate removes the entries for the keys.
func (c *Cache) Invalidate(keys ...string) {
	for _, k := range keys {
		c.entries.Remove(k)
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.entries.Purge()
}

// Keys returns the sorted list of keys with unexpired entries.
func (c *Cache) Keys() []string {
	keys := []string{}
	for _, k := range c.entries.Keys() {
		if _, ok := c.entries.Peek(k); ok {
			keys = append(keys, k)
		}
	}

	sort.Strings(keys)

	return keys
}

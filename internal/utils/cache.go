package utils

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheItem[V any] struct {
	data      V
	expiresAt time.Time
}

// TTLCache is a bounded LRU whose entries also expire after a fixed TTL.
//
// Readers that compute a value slowly should take Generation before loading
// and store with SetIfUnchanged, so a Delete that lands in between wins.
type TTLCache[V any] struct {
	lru *lru.Cache[string, cacheItem[V]]
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	counter uint64
	gens    map[string]uint64
}

// NewTTLCache holds at most size entries.
func NewTTLCache[V any](size int, ttl time.Duration) (*TTLCache[V], error) {
	l, err := lru.New[string, cacheItem[V]](size)
	if err != nil {
		return nil, err
	}
	return &TTLCache[V]{lru: l, ttl: ttl, now: time.Now, gens: make(map[string]uint64)}, nil
}

func (c *TTLCache[V]) Set(key string, data V) {
	c.lru.Add(key, cacheItem[V]{data: data, expiresAt: c.now().Add(c.ttl)})
}

// Generation returns the key's invalidation stamp. It changes on every Delete.
func (c *TTLCache[V]) Generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[key]
}

// SetIfUnchanged stores data only if key was not deleted since gen was read.
func (c *TTLCache[V]) SetIfUnchanged(key string, gen uint64, data V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[key] != gen {
		return false
	}
	c.Set(key, data)
	return true
}

// Get reports ok=false for missing and expired entries.
func (c *TTLCache[V]) Get(key string) (data V, ok bool) {
	item, found := c.lru.Get(key)
	if !found {
		return data, false
	}
	if c.now().After(item.expiresAt) {
		c.lru.Remove(key)
		return data, false
	}
	return item.data, true
}

func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// stamps come from one counter so a key never sees a value twice
	c.counter++
	c.gens[key] = c.counter
	c.lru.Remove(key)
}

func (c *TTLCache[V]) Len() int {
	return c.lru.Len()
}

// setClock is for tests.
func (c *TTLCache[V]) setClock(now func() time.Time) {
	c.now = now
}

package cache

import (
	"container/list"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Stats holds cumulative cache counters.
type Stats struct {
	Hits        uint64
	Misses      uint64
	Evictions   uint64
	Expirations uint64
}

// statistics is the internal atomic counter set.
type statistics struct {
	hits        atomic.Uint64
	misses      atomic.Uint64
	evictions   atomic.Uint64
	expirations atomic.Uint64
}

// entry is a cached payload with its admission time.
type entry struct {
	key      string
	data     []byte
	storedAt time.Time
}

// Option configures a Cache.
type Option func(*Cache)

// WithTTL sets a time-to-live after which entries expire lazily on access.
// Zero (the default) disables expiry.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// Cache is a thread-safe LRU byte cache. The least recently used entry is
// evicted when the maximum entry count is exceeded.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	items      map[string]*list.Element
	order      *list.List // front = most recently used
	stats      statistics
}

// New creates a cache holding at most maxEntries payloads.
func New(maxEntries int, opts ...Option) (*Cache, error) {
	if maxEntries <= 0 {
		return nil, fmt.Errorf("cache: maxEntries must be positive, got %d", maxEntries)
	}
	c := &Cache{
		maxEntries: maxEntries,
		items:      make(map[string]*list.Element),
		order:      list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Get retrieves a payload by key and marks it as recently used. Expired
// entries are removed on access and reported as misses.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, exists := c.items[key]
	if !exists {
		c.stats.misses.Add(1)
		return nil, false
	}

	ent := element.Value.(*entry)
	if c.ttl > 0 && time.Since(ent.storedAt) > c.ttl {
		c.removeElement(element)
		c.stats.expirations.Add(1)
		c.stats.misses.Add(1)
		return nil, false
	}

	c.order.MoveToFront(element)
	c.stats.hits.Add(1)
	return ent.data, true
}

// Set stores a payload, evicting the least recently used entry when full.
// Returns true if a new entry was created, false if an existing one was
// updated.
func (c *Cache) Set(key string, data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, exists := c.items[key]; exists {
		ent := element.Value.(*entry)
		ent.data = data
		ent.storedAt = time.Now()
		c.order.MoveToFront(element)
		return false
	}

	element := c.order.PushFront(&entry{key: key, data: data, storedAt: time.Now()})
	c.items[key] = element

	if c.order.Len() > c.maxEntries {
		oldest := c.order.Back()
		if oldest != nil {
			c.removeElement(oldest)
			c.stats.evictions.Add(1)
		}
	}
	return true
}

// Delete removes an entry by key. Returns true if the key existed.
func (c *Cache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, exists := c.items[key]
	if !exists {
		return false
	}
	c.removeElement(element)
	return true
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
}

// Len returns the current number of entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Keys returns all keys currently cached, most recently used first.
func (c *Cache) Keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, c.order.Len())
	for e := c.order.Front(); e != nil; e = e.Next() {
		keys = append(keys, e.Value.(*entry).key)
	}
	return keys
}

// Stats returns a snapshot of the cumulative counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:        c.stats.hits.Load(),
		Misses:      c.stats.misses.Load(),
		Evictions:   c.stats.evictions.Load(),
		Expirations: c.stats.expirations.Load(),
	}
}

// removeElement removes an entry; callers hold the lock.
func (c *Cache) removeElement(element *list.Element) {
	c.order.Remove(element)
	delete(c.items, element.Value.(*entry).key)
}

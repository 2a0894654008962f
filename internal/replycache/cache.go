// Package replycache memoizes one-shot engine results keyed by normalized
// utterance and current page path, with explicit TTL eviction.
package replycache

import (
	"sync"
	"time"

	"vox/internal/domain"
)

type Entry struct {
	Directive domain.Directive
	Reply     domain.SpokenReply
}

type cached struct {
	entry     Entry
	expiresAt time.Time
}

type Cache struct {
	mu    sync.RWMutex
	data  map[string]cached
	ttl   time.Duration
	clock func() time.Time
}

func New(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Cache{
		data:  make(map[string]cached),
		ttl:   ttl,
		clock: time.Now,
	}
}

func cacheKey(normalized, path string) string {
	return normalized + "|" + path
}

func (c *Cache) Get(normalized, path string) (Entry, bool) {
	c.mu.RLock()
	item, ok := c.data[cacheKey(normalized, path)]
	c.mu.RUnlock()
	if !ok || c.clock().After(item.expiresAt) {
		return Entry{}, false
	}
	return item.entry, true
}

func (c *Cache) Set(normalized, path string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[cacheKey(normalized, path)] = cached{
		entry:     entry,
		expiresAt: c.clock().Add(c.ttl),
	}
}

// Sweep drops every expired entry and returns how many were removed. Callers
// run it on a ticker; Get never serves an expired entry either way.
func (c *Cache) Sweep() int {
	now := c.clock()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, item := range c.data {
		if now.After(item.expiresAt) {
			delete(c.data, k)
			removed++
		}
	}
	return removed
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

package cache

import (
	"context"
	"path"
	"sync"
	"time"
)

// MemoryCache is the in-process fallback used when Redis is unreachable or not
// configured. Expired entries are dropped lazily on read and swept whenever a
// write happens after the sweep interval.
type MemoryCache struct {
	mu        sync.Mutex
	entries   map[string]memoryEntry
	lastSweep time.Time
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

const sweepInterval = 5 * time.Minute

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries:   make(map[string]memoryEntry),
		lastSweep: time.Now(),
	}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil, nil
	}
	return e.value, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	if now.Sub(c.lastSweep) > sweepInterval {
		for k, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, k)
			}
		}
		c.lastSweep = now
	}
	c.entries[key] = memoryEntry{value: value, expiresAt: now.Add(ttl)}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *MemoryCache) DeletePattern(_ context.Context, pattern string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	deleted := 0
	for k := range c.entries {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.entries, k)
			deleted++
		}
	}
	return deleted, nil
}

func (c *MemoryCache) HealthCheck(_ context.Context) Health {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Health{Status: "healthy", Backend: "memory", Keys: len(c.entries)}
}

func (c *MemoryCache) Close() error { return nil }

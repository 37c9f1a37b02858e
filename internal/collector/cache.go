package collector

import (
	"sync"
	"time"

	"github.com/jyoon8505-jpg/tqqq-bot/internal/model"
)

// Cache serves snapshots with a fixed time-to-live so every user interaction
// inside the window sees the same immutable data. The cache belongs to the
// caller; the collector itself never caches.
type Cache struct {
	mu        sync.Mutex
	collector *Collector
	ttl       time.Duration
	snapshot  *model.Snapshot
	fetchedAt time.Time
}

// NewCache wraps a collector with the given TTL.
func NewCache(c *Collector, ttl time.Duration) *Cache {
	return &Cache{collector: c, ttl: ttl}
}

// Get returns the cached snapshot, refreshing when it expired. A refresh
// failure with a still-valid previous snapshot is absorbed: better stale data
// than none during a transient outage.
func (c *Cache) Get() (*model.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && time.Since(c.fetchedAt) < c.ttl {
		return c.snapshot, nil
	}
	snap, err := c.collector.Refresh()
	if err != nil {
		if c.snapshot != nil {
			return c.snapshot, nil
		}
		return nil, err
	}
	c.snapshot = snap
	c.fetchedAt = time.Now()
	return snap, nil
}

// Invalidate drops the cached snapshot so the next Get refreshes.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = nil
}

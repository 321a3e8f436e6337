// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package cache

import (
	"sync"
	"time"
)

// entry is a cached value with its expiration time.
type entry struct {
	data      interface{}
	expiresAt time.Time
}

// TTL is a thread-safe in-memory cache with per-entry expiration.
// Expired entries are removed lazily on Get and by a background sweep.
// The capacity is advisory: it is reported in stats but never enforced.
type TTL struct {
	mu       sync.RWMutex
	entries  map[string]entry
	ttl      time.Duration
	capacity int

	statsMu   sync.Mutex
	hits      int64
	misses    int64
	evictions int64
}

// sweepInterval is how often the background cleanup runs.
const sweepInterval = 5 * time.Minute

// NewTTL creates a TTL cache with the given default expiration and
// advisory capacity. A background goroutine sweeps expired entries for
// the lifetime of the cache.
func NewTTL(ttl time.Duration, capacity int) *TTL {
	c := &TTL{
		entries:  make(map[string]entry),
		ttl:      ttl,
		capacity: capacity,
	}
	go c.sweepLoop()
	return c
}

// Get retrieves a value by key. An expired entry is deleted and counted
// as a miss.
func (c *TTL) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, exists := c.entries[key]
	c.mu.RUnlock()

	if !exists {
		c.recordMiss()
		return nil, false
	}

	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		c.recordMiss()
		c.recordEviction()
		return nil, false
	}

	c.recordHit()
	return e.data, true
}

// Set stores a value with the default TTL, overwriting any existing entry.
func (c *TTL) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *TTL) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{
		data:      value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// Delete removes an entry. Safe to call for keys that do not exist.
func (c *TTL) Delete(key string) {
	c.mu.Lock()
	_, existed := c.entries[key]
	delete(c.entries, key)
	c.mu.Unlock()

	if existed {
		c.recordEviction()
	}
}

// Clear removes all entries in a single map replacement.
func (c *TTL) Clear() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	c.statsMu.Lock()
	c.evictions += evicted
	c.statsMu.Unlock()
}

// GetStats returns a snapshot of the cache counters.
func (c *TTL) GetStats() Stats {
	c.mu.RLock()
	size := int64(len(c.entries))
	c.mu.RUnlock()

	c.statsMu.Lock()
	defer c.statsMu.Unlock()
	return Stats{
		Size:      size,
		Capacity:  int64(c.capacity),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// HitRate returns the hit percentage over all lookups so far.
func (c *TTL) HitRate() float64 {
	c.statsMu.Lock()
	defer c.statsMu.Unlock()

	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total) * 100
}

func (c *TTL) recordHit() {
	c.statsMu.Lock()
	c.hits++
	c.statsMu.Unlock()
}

func (c *TTL) recordMiss() {
	c.statsMu.Lock()
	c.misses++
	c.statsMu.Unlock()
}

func (c *TTL) recordEviction() {
	c.statsMu.Lock()
	c.evictions++
	c.statsMu.Unlock()
}

// sweepLoop periodically removes expired entries.
func (c *TTL) sweepLoop() {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for range ticker.C {
		c.sweep()
	}
}

func (c *TTL) sweep() {
	now := time.Now()
	var evicted int64

	c.mu.Lock()
	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
			evicted++
		}
	}
	c.mu.Unlock()

	if evicted > 0 {
		c.statsMu.Lock()
		c.evictions += evicted
		c.statsMu.Unlock()
	}
}

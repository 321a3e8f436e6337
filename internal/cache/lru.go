// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package cache

import (
	"sync"
	"time"
)

// lruEntry is a node in the LRU cache's doubly-linked list.
type lruEntry struct {
	key       string
	value     interface{}
	prev      *lruEntry
	next      *lruEntry
	expiresAt time.Time
}

// LRU is a thread-safe least-recently-used cache with TTL support.
// It uses a doubly-linked list for ordering and a map for lookups,
// giving O(1) Get, Set, and eviction. When the cache reaches capacity
// the least recently used entry is evicted, keeping memory bounded in a
// long-lived process.
type LRU struct {
	mu sync.RWMutex

	capacity int
	ttl      time.Duration

	items map[string]*lruEntry

	// head and tail are sentinel nodes. head.next is the most recently
	// used entry, tail.prev the least recently used.
	head *lruEntry
	tail *lruEntry

	hits      int64
	misses    int64
	evictions int64
}

// NewLRU creates an LRU cache with the given capacity and default TTL.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := &LRU{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*lruEntry, capacity),
		head:     &lruEntry{},
		tail:     &lruEntry{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get retrieves a value by key. Found entries are moved to the front
// (most recently used). Expired entries are removed and counted as
// misses.
func (c *LRU) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, exists := c.items[key]; exists {
		if time.Now().After(e.expiresAt) {
			c.removeEntry(e)
			c.evictions++
			c.misses++
			return nil, false
		}
		c.moveToFront(e)
		c.hits++
		return e.value, true
	}

	c.misses++
	return nil, false
}

// Set stores a value with the default TTL, overwriting any existing
// entry. If the cache is at capacity, the least recently used entry is
// evicted.
func (c *LRU) Set(key string, value interface{}) {
	c.SetWithTTL(key, value, c.ttl)
}

// SetWithTTL stores a value with a custom TTL.
func (c *LRU) SetWithTTL(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(ttl)

	if e, exists := c.items[key]; exists {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &lruEntry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	}
	c.addToFront(e)
	c.items[key] = e

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Delete removes an entry. Safe to call for keys that do not exist.
func (c *LRU) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, exists := c.items[key]; exists {
		c.removeEntry(e)
		c.evictions++
	}
}

// Clear removes all entries.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictions += int64(len(c.items))
	c.items = make(map[string]*lruEntry, c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
}

// Len returns the current number of entries.
func (c *LRU) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// GetStats returns a snapshot of the cache counters.
func (c *LRU) GetStats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return Stats{
		Size:      int64(len(c.items)),
		Capacity:  int64(c.capacity),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
}

// HitRate returns the hit percentage over all lookups so far.
func (c *LRU) HitRate() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total) * 100
}

// moveToFront moves an entry to the front of the list (most recently used).
// Caller must hold c.mu.
func (c *LRU) moveToFront(e *lruEntry) {
	c.unlink(e)
	c.addToFront(e)
}

// addToFront inserts an entry right after the head sentinel.
// Caller must hold c.mu.
func (c *LRU) addToFront(e *lruEntry) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

// unlink detaches an entry from the list. Caller must hold c.mu.
func (c *LRU) unlink(e *lruEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.prev = nil
	e.next = nil
}

// removeEntry unlinks an entry and deletes it from the map.
// Caller must hold c.mu.
func (c *LRU) removeEntry(e *lruEntry) {
	c.unlink(e)
	delete(c.items, e.key)
}

// evictOldest removes the least recently used entry.
// Caller must hold c.mu.
func (c *LRU) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
	c.evictions++
}

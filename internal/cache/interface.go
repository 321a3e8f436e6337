// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

// Package cache provides thread-safe in-process memoization for per-user
// profile data and article query results. The cache is an optimization
// only: a miss is always resolved by falling through to the data accessor,
// and correctness never depends on a hit.
package cache

import "time"

// Cacher defines the interface for cache implementations.
// Both TTL (map-based) and LRU (capacity-evicting) implement it, allowing
// the cache strategy to be selected by configuration.
//
// Usage:
//
//	var c Cacher = NewLRU(10000, 5*time.Minute)
//	c.Set("interests:alice", interests)
//	if v, ok := c.Get("interests:alice"); ok {
//	    // use cached value
//	}
type Cacher interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found and not expired.
	// Get never blocks on I/O and never fails.
	Get(key string) (interface{}, bool)

	// Set stores a value with the default TTL, unconditionally
	// overwriting any existing entry.
	Set(key string, value interface{})

	// SetWithTTL stores a value with a custom TTL.
	SetWithTTL(key string, value interface{}, ttl time.Duration)

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all entries.
	Clear()

	// GetStats returns cache statistics.
	GetStats() Stats

	// HitRate returns the cache hit rate as a percentage.
	HitRate() float64
}

// Stats is a point-in-time snapshot of cache performance counters.
type Stats struct {
	// Size is the current number of entries.
	Size int64

	// Capacity is the configured entry bound. Enforced by the LRU
	// cache, advisory (reporting only) for the TTL cache.
	Capacity int64

	Hits      int64
	Misses    int64
	Evictions int64
}

// Type selects the cache implementation.
type Type string

const (
	// TypeTTL is a map-based cache with lazy expiration and a
	// background sweep. Capacity is advisory only.
	TypeTTL Type = "ttl"

	// TypeLRU is a capacity-bounded least-recently-used cache with TTL.
	// This is the default: it keeps memory bounded in a long-lived
	// process.
	TypeLRU Type = "lru"
)

// Config holds configuration for creating a cache.
type Config struct {
	// Type selects the implementation (ttl or lru). Default: lru.
	Type Type

	// TTL is the default time-to-live for entries. Default: 5m.
	TTL time.Duration

	// Capacity is the maximum number of entries. Default: 10000.
	Capacity int
}

// New creates a cache based on the configuration. Unknown types fall back
// to the LRU implementation.
func New(cfg Config) Cacher {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	capacity := cfg.Capacity
	if capacity <= 0 {
		capacity = 10000
	}

	switch cfg.Type {
	case TypeTTL:
		return NewTTL(ttl, capacity)
	default:
		return NewLRU(capacity, ttl)
	}
}

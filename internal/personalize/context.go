// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package personalize

import (
	"time"

	"github.com/briefwire/briefwire/internal/models"
)

// PerfMetrics accumulates cross-cutting telemetry for one request.
type PerfMetrics struct {
	// ProcessingTime is the elapsed scoring time.
	ProcessingTime time.Duration

	// AlgorithmsUsed lists the scoring components that were actually
	// exercised. A component whose inputs are empty (e.g. symbol
	// matching for a user with no portfolio) is omitted.
	AlgorithmsUsed []string

	// CacheHits records, per cached input kind, whether the fetch was
	// served from cache.
	CacheHits map[string]bool
}

// Context assembles the inputs to one personalization request. It holds
// the four fetched record sets by reference and a mutable metrics slot.
// A Context is owned exclusively by the request that created it and is
// discarded at request end.
type Context struct {
	UserID string

	Interests []models.UserInterest
	Portfolio []models.PortfolioHolding
	History   []models.InteractionRecord
	Articles  []models.Article

	Perf PerfMetrics
}

// NewContext builds a per-request personalization context. The input
// slices are held by reference, not copied.
func NewContext(userID string, interests []models.UserInterest, portfolio []models.PortfolioHolding,
	history []models.InteractionRecord, articles []models.Article) *Context {
	return &Context{
		UserID:    userID,
		Interests: interests,
		Portfolio: portfolio,
		History:   history,
		Articles:  articles,
		Perf: PerfMetrics{
			CacheHits: make(map[string]bool),
		},
	}
}

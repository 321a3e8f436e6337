// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

// Package store provides access to the article corpus and user profile
// tables. The DataProvider interface is the contract the personalization
// engine consumes; the SQLite implementation backs it for embedded
// deployments.
package store

import (
	"context"

	"github.com/briefwire/briefwire/internal/models"
)

// ArticleFilters are the candidate-pool filters applied at fetch time,
// before personalized ranking.
type ArticleFilters struct {
	// Limit bounds the candidate pool size.
	Limit int

	// Offset skips into the candidate pool. This is candidate-pool
	// pagination, distinct from the final personalized pagination.
	Offset int

	// MaxAgeHours excludes articles published earlier than
	// now - MaxAgeHours.
	MaxAgeHours int

	// MinSentiment, when set, excludes articles whose normalized
	// sentiment falls below it. Applied after raw-to-normalized
	// conversion, not in SQL.
	MinSentiment float64

	// HasMinSentiment reports whether MinSentiment was supplied.
	HasMinSentiment bool
}

// DataProvider defines the queries the personalization engine needs.
// Implementations return plain records; all filtering beyond the
// documented candidate-pool filters happens in the engine.
type DataProvider interface {
	// Interests returns the user's declared interests.
	Interests(ctx context.Context, userID string) ([]models.UserInterest, error)

	// Portfolio returns the user's portfolio holdings.
	Portfolio(ctx context.Context, userID string) ([]models.PortfolioHolding, error)

	// History returns the user's most recent interaction records,
	// newest first, at most limit records.
	History(ctx context.Context, userID string, limit int) ([]models.InteractionRecord, error)

	// Articles returns the active candidate pool matching the filters,
	// newest first.
	Articles(ctx context.Context, filters ArticleFilters) ([]models.Article, error)

	// Bookmarks returns the subset of articleIDs the user has
	// bookmarked.
	Bookmarks(ctx context.Context, userID string, articleIDs []string) (map[string]struct{}, error)
}

// NormalizeSentiment converts a raw sentiment value in [0, 100] into the
// normalized [-1, 1] range used throughout the engine. Out-of-range raw
// values are clamped.
func NormalizeSentiment(raw float64) float64 {
	normalized := (raw - 50) / 50
	if normalized < -1 {
		return -1
	}
	if normalized > 1 {
		return 1
	}
	return normalized
}

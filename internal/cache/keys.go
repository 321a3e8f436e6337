// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package cache

import (
	"fmt"
	"strconv"
)

// Cache keys must be a pure function of semantic identity so that two
// requests for the same data share one entry: user-scoped data is keyed
// by a namespaced user ID, article queries by a canonical fingerprint of
// the filter parameters.

// InterestsKey returns the cache key for a user's declared interests.
func InterestsKey(userID string) string {
	return "interests:" + userID
}

// PortfolioKey returns the cache key for a user's portfolio holdings.
func PortfolioKey(userID string) string {
	return "portfolio:" + userID
}

// ArticleQueryKey returns a canonical, order-independent fingerprint of
// an article query's filter parameters. Identical filters always produce
// identical keys regardless of how the caller assembled them.
//
// minSentiment is formatted with fixed precision so that values equal
// after parsing (e.g. 0.2 and 0.20) fingerprint identically.
func ArticleQueryKey(limit, offset, maxAgeHours int, minSentiment float64, hasMinSentiment bool) string {
	sentiment := "none"
	if hasMinSentiment {
		sentiment = strconv.FormatFloat(minSentiment, 'f', 4, 64)
	}
	return fmt.Sprintf("articles:limit=%d:offset=%d:maxAge=%d:minSentiment=%s",
		limit, offset, maxAgeHours, sentiment)
}

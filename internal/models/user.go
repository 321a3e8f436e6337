// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package models

import "time"

// UserInterest is a declared topic interest. A user may have any number of
// interests; ordering is by Priority descending, insertion order is
// irrelevant.
type UserInterest struct {
	// UserID identifies the owning user.
	UserID string `json:"user_id"`

	// Category is a free-text topic label (e.g. "semiconductors").
	Category string `json:"category"`

	// Keywords are additional match terms associated with the category.
	Keywords []string `json:"keywords,omitempty"`

	// Priority is an ordinal weight in [1, 5]; higher means the interest
	// should contribute proportionally more to keyword matching.
	Priority int `json:"priority"`
}

// PortfolioHolding is a position in the user's portfolio.
type PortfolioHolding struct {
	// UserID identifies the owning user.
	UserID string `json:"user_id"`

	// Symbol is the ticker symbol (e.g. "NVDA").
	Symbol string `json:"symbol"`

	// Allocation is the fraction of the portfolio held in this position,
	// in [0, 1]. Zero means the allocation is unknown.
	Allocation float64 `json:"allocation,omitempty"`

	// PurchasePrice is the average entry price, if tracked.
	PurchasePrice float64 `json:"purchase_price,omitempty"`

	// Quantity is the number of units held, if tracked.
	Quantity float64 `json:"quantity,omitempty"`
}

// InteractionRecord is a historical record of a user interacting with an
// article. Records are a read-only signal input to ranking; the engine
// never mutates them.
type InteractionRecord struct {
	// UserID identifies the interacting user.
	UserID string `json:"user_id"`

	// ArticleID references the article interacted with.
	ArticleID string `json:"article_id"`

	// RelevanceScore is the score computed for the article by a prior
	// ranking pass, when known. Zero when absent.
	RelevanceScore float64 `json:"relevance_score,omitempty"`

	// Read indicates the article was opened.
	Read bool `json:"read"`

	// Bookmarked indicates the article was saved.
	Bookmarked bool `json:"bookmarked"`

	// Liked indicates an explicit positive reaction.
	Liked bool `json:"liked"`

	// Metadata holds free-form interaction attributes.
	Metadata map[string]string `json:"metadata,omitempty"`

	// CreatedAt is when the interaction occurred.
	CreatedAt time.Time `json:"created_at"`
}

// Positive reports whether the interaction is a positive engagement signal
// (liked or bookmarked, or read with a known prior relevance score).
func (r InteractionRecord) Positive() bool {
	if r.Liked || r.Bookmarked {
		return true
	}
	return r.Read && r.RelevanceScore > 0
}

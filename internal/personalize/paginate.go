// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package personalize

import "github.com/briefwire/briefwire/internal/models"

// Pagination bounds.
const (
	MinLimit = 1
	MaxLimit = 100
)

// Page is one window of a ranked list.
type Page struct {
	// Items are the articles on this page.
	Items []models.RankedArticle

	// Page and Limit are the coerced values actually applied.
	Page  int
	Limit int

	// Total is the length of the full ranked list.
	Total int

	// HasMore is true iff page*limit < total.
	HasMore bool
}

// Paginate slices the ranked list. Page is coerced to >= 1 and limit
// into [MinLimit, MaxLimit]. A page beyond the available data returns
// an empty item list with HasMore false, never an error.
//
// Relevance filtering happens before pagination, never after: Paginate
// only windows an already-filtered list.
func Paginate(ranked []models.RankedArticle, page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	total := len(ranked)
	start := (page - 1) * limit
	end := start + limit

	if start >= total {
		return Page{
			Items:   []models.RankedArticle{},
			Page:    page,
			Limit:   limit,
			Total:   total,
			HasMore: false,
		}
	}
	if end > total {
		end = total
	}

	return Page{
		Items:   ranked[start:end],
		Page:    page,
		Limit:   limit,
		Total:   total,
		HasMore: end < total,
	}
}

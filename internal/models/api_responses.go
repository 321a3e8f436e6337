// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package models

import "time"

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides a consistent structure for both successful and
// error responses.
//
// Status field values:
//   - "success": request completed, see Data
//   - "error": request failed, see Error
//
// Example successful response:
//
//	{
//	  "status": "success",
//	  "data": {"articles": [...], "pagination": {...}},
//	  "metadata": {"timestamp": "2026-08-31T12:00:00Z", "request_id": "..."}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	// Timestamp is the server time when the response was generated.
	Timestamp time.Time `json:"timestamp"`

	// RequestID correlates the response with server logs.
	RequestID string `json:"request_id,omitempty"`
}

// APIError contains structured error details for failed requests.
type APIError struct {
	// Code is a machine-readable error code (e.g. "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable description.
	Message string `json:"message"`

	// Details carries optional field-level information.
	Details map[string]interface{} `json:"details,omitempty"`
}

// FeedResponse is the payload of a personalized feed request.
type FeedResponse struct {
	Articles        []FeedArticle       `json:"articles"`
	Pagination      PaginationMeta      `json:"pagination"`
	Personalization PersonalizationMeta `json:"personalization"`
}

// PaginationMeta describes the page window of a feed response.
type PaginationMeta struct {
	// Page is the 1-based page number served.
	Page int `json:"page"`

	// Limit is the page size used.
	Limit int `json:"limit"`

	// Total is the number of ranked articles across all pages.
	Total int `json:"total"`

	// HasMore is true iff page*limit < total.
	HasMore bool `json:"has_more"`
}

// PersonalizationMeta reports how the feed was personalized.
type PersonalizationMeta struct {
	// UserID is the resolved user, empty for anonymous requests.
	UserID string `json:"user_id,omitempty"`

	// Scores maps article ID to its computed relevance score.
	Scores map[string]float64 `json:"relevance_scores,omitempty"`

	// AppliedFilters lists the optional filters that were in effect,
	// e.g. "sortBy:relevance", "maxAge:168", "minSentiment:0.20".
	AppliedFilters []string `json:"applied_filters"`

	// AlgorithmsUsed lists the scoring components exercised for this
	// request.
	AlgorithmsUsed []string `json:"algorithms_used,omitempty"`

	// ProcessingTimeMS is the end-to-end personalization latency.
	ProcessingTimeMS int64 `json:"processing_time_ms"`

	// CacheHits reports which cached inputs were served from cache.
	CacheHits map[string]bool `json:"cache_hits,omitempty"`
}

// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package personalize

import (
	"github.com/briefwire/briefwire/internal/config"
)

// SortMode selects the feed ordering.
type SortMode string

const (
	// SortRelevance orders by the composite relevance score.
	SortRelevance SortMode = "relevance"

	// SortLatest bypasses scoring entirely and orders strictly by
	// publication time descending. This is a documented alternate
	// mode, not a fallback path.
	SortLatest SortMode = "latest"
)

// Scoring component identifiers reported in AlgorithmsUsed.
const (
	AlgorithmKeywordMatch = "keyword_match"
	AlgorithmSymbolMatch  = "symbol_match"
	AlgorithmSentiment    = "sentiment"
	AlgorithmTimeDecay    = "time_decay"
	AlgorithmLatest       = "latest"
)

// Options bundles the per-request ranking parameters.
type Options struct {
	// MinRelevanceScore is the hard score floor. Articles scoring
	// below it are excluded from the output entirely, not merely
	// sorted low. Zero means no floor.
	MinRelevanceScore float64

	// MaxAgeHours is the recency window. It is applied upstream when
	// fetching candidates and re-checked during scoring; it also
	// parameterizes the time-decay signal. Zero falls back to the
	// engine's configured default.
	MaxAgeHours int

	// SortBy selects relevance or latest ordering.
	SortBy SortMode

	// IncludeBookmarks controls page-level bookmark enrichment.
	IncludeBookmarks bool

	// Weights are the signal weights. The engine uses the weighted
	// sum as-is and never assumes they are normalized. A zero value
	// falls back to the engine's configured weights.
	Weights config.Weights
}

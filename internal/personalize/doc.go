// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

// Package personalize implements the relevance ranking engine at the
// heart of Briefwire: it scores candidate articles against a user's
// declared interests, portfolio holdings, and interaction history,
// filters and orders them deterministically, and paginates the result.
//
// # Architecture
//
//   - Fetcher: cache-backed data accessors with graceful degradation.
//     Interests, portfolio, and the article pool are cacheable; history
//     is always fetched fresh since staleness would bias ranking.
//   - Context: a per-request container for the four fetched input sets
//     and a mutable performance-metrics slot.
//   - Engine: the scoring pass. A composite score per article is the
//     weighted sum of four signal components (keyword match, symbol
//     match, sentiment alignment, time decay).
//   - Paginate: slices the ranked list into pages with a stable
//     contract (page >= 1, limit in [1, 100], hasMore iff more remain).
//
// # Determinism
//
// Given identical inputs and weights, Rank produces identical ordered
// output: scoring is pure, and ties are broken by publication time
// descending, then article ID ascending, so pagination is reproducible
// across repeated requests.
//
// The package has no dependency on the HTTP layer; the DataProvider
// interface decouples it from storage.
package personalize

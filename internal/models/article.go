// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

// Package models defines the domain entities shared across Briefwire:
// news articles, user profile records, and the standardized API response
// envelope used by all HTTP endpoints.
package models

import "time"

// Article is a news article as fetched from storage. Articles are read-only
// to the personalization engine; they are never mutated after fetch.
type Article struct {
	// ID is the unique article identifier.
	ID string `json:"id"`

	// Title is the headline.
	Title string `json:"title"`

	// Summary is a short abstract suitable for feed display.
	Summary string `json:"summary"`

	// Content is the full article body.
	Content string `json:"content,omitempty"`

	// Source is the publisher name.
	Source string `json:"source"`

	// PublishedAt is the publication timestamp.
	PublishedAt time.Time `json:"published_at"`

	// Keywords are topic tags extracted from the article.
	Keywords []string `json:"keywords,omitempty"`

	// Symbols are ticker symbols of companies the article relates to.
	Symbols []string `json:"symbols,omitempty"`

	// SentimentScore is the normalized sentiment in [-1, 1].
	// Negative values indicate bearish coverage, positive values bullish.
	SentimentScore float64 `json:"sentiment_score"`

	// SentimentLabel is the human-readable sentiment classification
	// (e.g. "positive", "neutral", "negative").
	SentimentLabel string `json:"sentiment_label,omitempty"`

	// ImageURL is an optional preview image.
	ImageURL string `json:"image_url,omitempty"`

	// ActionURL is an optional deep link for the article.
	ActionURL string `json:"action_url,omitempty"`

	// IsActive indicates whether the article is eligible for serving.
	IsActive bool `json:"-"`
}

// RankedArticle is an Article annotated with a computed relevance score.
// The Bookmarked flag is set during page enrichment, not during ranking.
type RankedArticle struct {
	Article

	// Score is the composite relevance score, conventionally in [0, 1].
	Score float64 `json:"relevance_score"`

	// Bookmarked reports whether the requesting user has bookmarked
	// this article. Only populated for articles on the returned page.
	Bookmarked bool `json:"bookmarked"`
}

// FeedArticle is the external article shape returned to clients.
// Internal-only fields (Content, IsActive) are dropped.
type FeedArticle struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	Source         string    `json:"source"`
	PublishedAt    time.Time `json:"published_at"`
	Keywords       []string  `json:"keywords,omitempty"`
	Symbols        []string  `json:"symbols,omitempty"`
	SentimentScore float64   `json:"sentiment_score"`
	SentimentLabel string    `json:"sentiment_label,omitempty"`
	ImageURL       string    `json:"image_url,omitempty"`
	ActionURL      string    `json:"action_url,omitempty"`
	Bookmarked     bool      `json:"bookmarked"`
}

// ToFeedArticle converts a ranked article into its external shape.
func (ra RankedArticle) ToFeedArticle() FeedArticle {
	return FeedArticle{
		ID:             ra.ID,
		Title:          ra.Title,
		Summary:        ra.Summary,
		Source:         ra.Source,
		PublishedAt:    ra.PublishedAt,
		Keywords:       ra.Keywords,
		Symbols:        ra.Symbols,
		SentimentScore: ra.SentimentScore,
		SentimentLabel: ra.SentimentLabel,
		ImageURL:       ra.ImageURL,
		ActionURL:      ra.ActionURL,
		Bookmarked:     ra.Bookmarked,
	}
}

// Age returns how old the article is relative to now.
func (a Article) Age(now time.Time) time.Duration {
	return now.Sub(a.PublishedAt)
}

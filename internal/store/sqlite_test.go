// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package store

import (
	"context"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func seedArticle(t *testing.T, s *SQLite, id string, publishedAt time.Time, sentimentRaw float64, active bool) {
	t.Helper()
	_, err := s.DB().Exec(
		`INSERT INTO articles (id, title, published_at, keywords, symbols, sentiment_raw, is_active)
		 VALUES (?, ?, ?, '["tech"]', '["NVDA"]', ?, ?)`,
		id, "title "+id, publishedAt, sentimentRaw, active)
	if err != nil {
		t.Fatalf("seed article %s: %v", id, err)
	}
}

func TestArticlesRecencyCutoff(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	seedArticle(t, s, "fresh", now.Add(-2*time.Hour), 50, true)
	seedArticle(t, s, "stale", now.Add(-30*time.Hour), 50, true)

	articles, err := s.Articles(context.Background(), ArticleFilters{Limit: 10, MaxAgeHours: 24})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}

	if len(articles) != 1 || articles[0].ID != "fresh" {
		t.Errorf("Expected only the fresh article, got %d articles", len(articles))
	}
}

func TestArticlesInactiveExcluded(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	seedArticle(t, s, "active", now.Add(-time.Hour), 50, true)
	seedArticle(t, s, "inactive", now.Add(-time.Hour), 50, false)

	articles, err := s.Articles(context.Background(), ArticleFilters{Limit: 10, MaxAgeHours: 24})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(articles) != 1 || articles[0].ID != "active" {
		t.Errorf("Expected only the active article, got %d", len(articles))
	}
}

func TestArticlesMinSentimentAfterNormalization(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	// raw 80 normalizes to 0.6, raw 40 to -0.2
	seedArticle(t, s, "bullish", now.Add(-time.Hour), 80, true)
	seedArticle(t, s, "bearish", now.Add(-time.Hour), 40, true)

	articles, err := s.Articles(context.Background(), ArticleFilters{
		Limit: 10, MaxAgeHours: 24, MinSentiment: 0.2, HasMinSentiment: true,
	})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}

	if len(articles) != 1 || articles[0].ID != "bullish" {
		t.Fatalf("Expected only the bullish article, got %d articles", len(articles))
	}
	if got := articles[0].SentimentScore; got != 0.6 {
		t.Errorf("Expected normalized sentiment 0.6, got %v", got)
	}
}

func TestArticlesPoolPagination(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	for i := 0; i < 5; i++ {
		seedArticle(t, s, string(rune('a'+i)), now.Add(-time.Duration(i)*time.Minute), 50, true)
	}

	page, err := s.Articles(context.Background(), ArticleFilters{Limit: 2, Offset: 2, MaxAgeHours: 24})
	if err != nil {
		t.Fatalf("Articles: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("Expected 2 articles, got %d", len(page))
	}
	// Newest first ordering means offset 2 starts at the third newest.
	if page[0].ID != "c" || page[1].ID != "d" {
		t.Errorf("Expected [c d], got [%s %s]", page[0].ID, page[1].ID)
	}
}

func TestInterestsRoundTrip(t *testing.T) {
	s := openTestStore(t)

	_, err := s.DB().Exec(
		`INSERT INTO user_interests (user_id, category, keywords, priority)
		 VALUES ('u1', 'semiconductors', '["chips","gpu"]', 5)`)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	interests, err := s.Interests(context.Background(), "u1")
	if err != nil {
		t.Fatalf("Interests: %v", err)
	}
	if len(interests) != 1 {
		t.Fatalf("Expected 1 interest, got %d", len(interests))
	}
	if interests[0].Priority != 5 || len(interests[0].Keywords) != 2 {
		t.Errorf("Unexpected interest: %+v", interests[0])
	}

	// Unknown user yields an empty result, not an error.
	none, err := s.Interests(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Interests(nobody): %v", err)
	}
	if len(none) != 0 {
		t.Errorf("Expected no interests for unknown user, got %d", len(none))
	}
}

func TestHistoryNewestFirstAndLimited(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	for i := 0; i < 5; i++ {
		_, err := s.DB().Exec(
			`INSERT INTO interactions (user_id, article_id, read, created_at)
			 VALUES ('u1', ?, 1, ?)`,
			string(rune('a'+i)), now.Add(-time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	records, err := s.History(context.Background(), "u1", 3)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0].ArticleID != "a" {
		t.Errorf("Expected newest record first, got %s", records[0].ArticleID)
	}
}

func TestBookmarksMembership(t *testing.T) {
	s := openTestStore(t)
	now := time.Now()

	_, err := s.DB().Exec(
		`INSERT INTO interactions (user_id, article_id, bookmarked, created_at) VALUES
		 ('u1', 'a1', 1, ?), ('u1', 'a2', 0, ?), ('u2', 'a3', 1, ?)`,
		now, now, now)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := s.Bookmarks(context.Background(), "u1", []string{"a1", "a2", "a3"})
	if err != nil {
		t.Fatalf("Bookmarks: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("Expected 1 bookmark, got %d", len(got))
	}
	if _, ok := got["a1"]; !ok {
		t.Error("Expected a1 to be bookmarked")
	}

	// Empty ID slice short-circuits without a query.
	empty, err := s.Bookmarks(context.Background(), "u1", nil)
	if err != nil {
		t.Fatalf("Bookmarks(empty): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty set, got %d", len(empty))
	}
}

func TestNormalizeSentiment(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{50, 0},
		{100, 1},
		{0, -1},
		{75, 0.5},
		{150, 1},  // clamped
		{-20, -1}, // clamped
	}

	for _, tt := range tests {
		if got := NormalizeSentiment(tt.raw); got != tt.want {
			t.Errorf("NormalizeSentiment(%v) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

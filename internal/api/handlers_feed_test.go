// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/briefwire/briefwire/internal/cache"
	"github.com/briefwire/briefwire/internal/config"
	"github.com/briefwire/briefwire/internal/models"
	"github.com/briefwire/briefwire/internal/personalize"
	"github.com/briefwire/briefwire/internal/store"
)

// stubProvider is a fixed-data store.DataProvider for handler tests.
type stubProvider struct {
	interests []models.UserInterest
	portfolio []models.PortfolioHolding
	history   []models.InteractionRecord
	articles  []models.Article
	bookmarks map[string]struct{}
}

func (p *stubProvider) Interests(ctx context.Context, userID string) ([]models.UserInterest, error) {
	return p.interests, nil
}

func (p *stubProvider) Portfolio(ctx context.Context, userID string) ([]models.PortfolioHolding, error) {
	return p.portfolio, nil
}

func (p *stubProvider) History(ctx context.Context, userID string, limit int) ([]models.InteractionRecord, error) {
	return p.history, nil
}

func (p *stubProvider) Articles(ctx context.Context, filters store.ArticleFilters) ([]models.Article, error) {
	return p.articles, nil
}

func (p *stubProvider) Bookmarks(ctx context.Context, userID string, articleIDs []string) (map[string]struct{}, error) {
	return p.bookmarks, nil
}

func testPersonalizationConfig() config.PersonalizationConfig {
	return config.PersonalizationConfig{
		Weights:            config.DefaultWeights(),
		MinRelevanceScore:  0,
		DefaultMaxAgeHours: 168,
		CandidateLimit:     200,
		HistoryLimit:       50,
		FetchTimeout:       time.Second,
	}
}

func newTestFeedHandler(provider store.DataProvider) *FeedHandler {
	cfg := testPersonalizationConfig()
	fetcher := personalize.NewFetcher(provider, cache.NewLRU(100, time.Minute), cfg, zerolog.Nop())
	engine := personalize.NewEngine(cfg, zerolog.Nop())
	return NewFeedHandler(fetcher, engine, cfg)
}

func testArticles(now time.Time) []models.Article {
	return []models.Article{
		{ID: "a1", Title: "Chip maker rallies", Keywords: []string{"semiconductors"},
			Symbols: []string{"NVDA"}, PublishedAt: now.Add(-1 * time.Hour), IsActive: true},
		{ID: "a2", Title: "Bond yields climb", Keywords: []string{"bonds"},
			PublishedAt: now.Add(-3 * time.Hour), IsActive: true},
		{ID: "a3", Title: "Retail sales dip", Keywords: []string{"retail"},
			PublishedAt: now.Add(-48 * time.Hour), IsActive: true},
	}
}

// decodeFeedResponse unwraps the APIResponse envelope into a feed
// payload, re-marshaling Data through JSON.
func decodeFeedResponse(t *testing.T, rec *httptest.ResponseRecorder) (models.APIResponse, models.FeedResponse) {
	t.Helper()

	var envelope models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode response envelope: %v", err)
	}

	raw, err := json.Marshal(envelope.Data)
	if err != nil {
		t.Fatalf("Failed to re-marshal data: %v", err)
	}
	var feed models.FeedResponse
	if err := json.Unmarshal(raw, &feed); err != nil {
		t.Fatalf("Failed to decode feed payload: %v", err)
	}
	return envelope, feed
}

func TestFeedBasicRequest(t *testing.T) {
	provider := &stubProvider{articles: testArticles(time.Now())}
	handler := newTestFeedHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	rec := httptest.NewRecorder()
	handler.Feed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200; body: %s", rec.Code, rec.Body.String())
	}

	envelope, feed := decodeFeedResponse(t, rec)
	if envelope.Status != "success" {
		t.Errorf("Envelope status = %q, want success", envelope.Status)
	}
	if len(feed.Articles) != 3 {
		t.Errorf("Articles = %d, want 3", len(feed.Articles))
	}
	if feed.Pagination.Page != 1 || feed.Pagination.Limit != defaultPageLimit {
		t.Errorf("Pagination defaults not applied: %+v", feed.Pagination)
	}
	if feed.Pagination.Total != 3 || feed.Pagination.HasMore {
		t.Errorf("Pagination totals wrong: %+v", feed.Pagination)
	}
	if feed.Personalization.ProcessingTimeMS < 0 {
		t.Errorf("ProcessingTimeMS = %d, want >= 0", feed.Personalization.ProcessingTimeMS)
	}
}

func TestFeedValidationErrors(t *testing.T) {
	provider := &stubProvider{articles: testArticles(time.Now())}
	handler := newTestFeedHandler(provider)

	tests := []struct {
		name  string
		query string
	}{
		{"page zero", "?page=0"},
		{"negative page", "?page=-5"},
		{"limit too large", "?limit=101"},
		{"limit zero", "?limit=0"},
		{"unknown sort", "?sortBy=trending"},
		{"maxAge too large", "?maxAge=1000"},
		{"sentiment below range", "?minSentiment=-1.5"},
		{"sentiment above range", "?minSentiment=2"},
		{"page not a number", "?page=abc"},
		{"limit not a number", "?limit=abc"},
		{"maxAge not a number", "?maxAge=abc"},
		{"sentiment not a number", "?minSentiment=abc"},
		{"bookmarks not a boolean", "?includeBookmarks=maybe"},
		{"several malformed at once", "?page=abc&limit=xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/feed"+tt.query, nil)
			rec := httptest.NewRecorder()
			handler.Feed(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("Status = %d, want 400; body: %s", rec.Code, rec.Body.String())
			}

			var envelope models.APIResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
				t.Fatalf("Failed to decode response: %v", err)
			}
			if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
				t.Errorf("Expected VALIDATION_ERROR, got %+v", envelope.Error)
			}
		})
	}
}

func TestFeedSortLatest(t *testing.T) {
	now := time.Now()
	provider := &stubProvider{articles: testArticles(now)}
	handler := newTestFeedHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?sortBy=latest", nil)
	rec := httptest.NewRecorder()
	handler.Feed(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	_, feed := decodeFeedResponse(t, rec)
	if len(feed.Articles) != 3 {
		t.Fatalf("Articles = %d, want 3", len(feed.Articles))
	}
	for i := 1; i < len(feed.Articles); i++ {
		if feed.Articles[i].PublishedAt.After(feed.Articles[i-1].PublishedAt) {
			t.Errorf("Articles not ordered newest-first at index %d", i)
		}
	}
	if len(feed.Personalization.AlgorithmsUsed) != 1 ||
		feed.Personalization.AlgorithmsUsed[0] != "latest" {
		t.Errorf("AlgorithmsUsed = %v, want [latest]", feed.Personalization.AlgorithmsUsed)
	}
}

func TestFeedPagination(t *testing.T) {
	now := time.Now()
	articles := make([]models.Article, 25)
	for i := range articles {
		articles[i] = models.Article{
			ID:          string(rune('a'+i/10)) + string(rune('0'+i%10)),
			Title:       "Article",
			PublishedAt: now.Add(-time.Duration(i) * time.Hour),
			IsActive:    true,
		}
	}
	provider := &stubProvider{articles: articles}
	handler := newTestFeedHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?page=3&limit=10", nil)
	rec := httptest.NewRecorder()
	handler.Feed(rec, req)

	_, feed := decodeFeedResponse(t, rec)
	if len(feed.Articles) != 5 {
		t.Errorf("Page 3 of 25 with limit 10 should hold 5 articles, got %d", len(feed.Articles))
	}
	if feed.Pagination.HasMore {
		t.Error("Last page must report has_more=false")
	}
	if feed.Pagination.Total != 25 {
		t.Errorf("Total = %d, want 25", feed.Pagination.Total)
	}
}

func TestFeedAuthenticatedPersonalization(t *testing.T) {
	now := time.Now()
	provider := &stubProvider{
		articles:  testArticles(now),
		interests: []models.UserInterest{{UserID: "u1", Category: "tech", Keywords: []string{"semiconductors"}, Priority: 5}},
		portfolio: []models.PortfolioHolding{{UserID: "u1", Symbol: "NVDA", Allocation: 1}},
	}
	handler := newTestFeedHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	req = req.WithContext(contextWithUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()
	handler.Feed(rec, req)

	_, feed := decodeFeedResponse(t, rec)
	if feed.Personalization.UserID != "u1" {
		t.Errorf("UserID = %q, want u1", feed.Personalization.UserID)
	}
	// a1 matches both the keyword and the portfolio symbol and must
	// outrank the others.
	if feed.Articles[0].ID != "a1" {
		t.Errorf("Top article = %s, want a1", feed.Articles[0].ID)
	}
	if feed.Personalization.Scores["a1"] <= feed.Personalization.Scores["a2"] {
		t.Errorf("Expected a1 to outscore a2: %v", feed.Personalization.Scores)
	}

	used := feed.Personalization.AlgorithmsUsed
	wantAlgos := map[string]bool{"keyword_match": true, "symbol_match": true, "sentiment": true, "time_decay": true}
	if len(used) != len(wantAlgos) {
		t.Fatalf("AlgorithmsUsed = %v, want all four components", used)
	}
	for _, a := range used {
		if !wantAlgos[a] {
			t.Errorf("Unexpected algorithm %q", a)
		}
	}
}

func TestFeedAnonymousOmitsProfileAlgorithms(t *testing.T) {
	provider := &stubProvider{
		articles:  testArticles(time.Now()),
		interests: []models.UserInterest{{UserID: "u1", Category: "tech", Priority: 5}},
	}
	handler := newTestFeedHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed", nil)
	rec := httptest.NewRecorder()
	handler.Feed(rec, req)

	_, feed := decodeFeedResponse(t, rec)
	for _, a := range feed.Personalization.AlgorithmsUsed {
		if a == "keyword_match" || a == "symbol_match" {
			t.Errorf("Anonymous feed must not report %q", a)
		}
	}
	if feed.Personalization.UserID != "" {
		t.Errorf("UserID = %q, want empty", feed.Personalization.UserID)
	}
}

func TestFeedBookmarkEnrichment(t *testing.T) {
	now := time.Now()
	provider := &stubProvider{
		articles:  testArticles(now),
		bookmarks: map[string]struct{}{"a2": {}},
	}
	handler := newTestFeedHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?includeBookmarks=true", nil)
	req = req.WithContext(contextWithUserID(req.Context(), "u1"))
	rec := httptest.NewRecorder()
	handler.Feed(rec, req)

	_, feed := decodeFeedResponse(t, rec)
	found := false
	for _, a := range feed.Articles {
		if a.ID == "a2" {
			found = true
			if !a.Bookmarked {
				t.Error("a2 should be marked bookmarked")
			}
		} else if a.Bookmarked {
			t.Errorf("%s should not be marked bookmarked", a.ID)
		}
	}
	if !found {
		t.Fatal("a2 missing from feed")
	}
}

func TestFeedMaxAgeFilter(t *testing.T) {
	now := time.Now()
	provider := &stubProvider{articles: testArticles(now)}
	handler := newTestFeedHandler(provider)

	// a3 is 48 hours old; a 24 hour window must exclude it even though
	// the stub provider does not filter.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?maxAge=24", nil)
	rec := httptest.NewRecorder()
	handler.Feed(rec, req)

	_, feed := decodeFeedResponse(t, rec)
	for _, a := range feed.Articles {
		if a.ID == "a3" {
			t.Error("a3 should be outside the 24 hour window")
		}
	}
	if len(feed.Articles) != 2 {
		t.Errorf("Articles = %d, want 2", len(feed.Articles))
	}
}

func TestFeedAppliedFilters(t *testing.T) {
	provider := &stubProvider{articles: testArticles(time.Now())}
	handler := newTestFeedHandler(provider)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/feed?minSentiment=0.2&maxAge=48", nil)
	rec := httptest.NewRecorder()
	handler.Feed(rec, req)

	_, feed := decodeFeedResponse(t, rec)
	want := map[string]bool{"sortBy:relevance": true, "maxAge:48": true, "minSentiment:0.20": true}
	for _, f := range feed.Personalization.AppliedFilters {
		if !want[f] {
			t.Errorf("Unexpected applied filter %q", f)
		}
		delete(want, f)
	}
	for f := range want {
		t.Errorf("Missing applied filter %q", f)
	}
}

// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/briefwire/briefwire/internal/config"
	"github.com/briefwire/briefwire/internal/logging"
	"github.com/briefwire/briefwire/internal/metrics"
	"github.com/briefwire/briefwire/internal/models"
	"github.com/briefwire/briefwire/internal/personalize"
	"github.com/briefwire/briefwire/internal/store"
)

// Default page size when the client does not supply one.
const defaultPageLimit = 20

// FeedHandler serves the personalized feed endpoint.
type FeedHandler struct {
	fetcher *personalize.Fetcher
	engine  *personalize.Engine
	cfg     config.PersonalizationConfig
}

// NewFeedHandler creates the feed handler.
func NewFeedHandler(fetcher *personalize.Fetcher, engine *personalize.Engine, cfg config.PersonalizationConfig) *FeedHandler {
	return &FeedHandler{
		fetcher: fetcher,
		engine:  engine,
		cfg:     cfg,
	}
}

// feedRequest carries the parsed and validated query parameters for
// GET /api/v1/feed.
type feedRequest struct {
	Page             int      `validate:"gte=1"`
	Limit            int      `validate:"gte=1,lte=100"`
	SortBy           string   `validate:"oneof=relevance latest"`
	MaxAgeHours      int      `validate:"gte=1,lte=720"`
	MinSentiment     *float64 `validate:"omitempty,gte=-1,lte=1"`
	IncludeBookmarks bool
}

// parseFeedRequest extracts feed parameters with defaults applied.
// Unparseable values are reported through the returned error; range
// violations are left for validateRequest.
func (h *FeedHandler) parseFeedRequest(r *http.Request) (feedRequest, *models.APIError) {
	params := newQueryParams(r)
	req := feedRequest{
		Page:             params.Int("page", 1),
		Limit:            params.Int("limit", defaultPageLimit),
		SortBy:           r.URL.Query().Get("sortBy"),
		MaxAgeHours:      params.Int("maxAge", h.cfg.DefaultMaxAgeHours),
		IncludeBookmarks: params.Bool("includeBookmarks", false),
	}

	if req.SortBy == "" {
		req.SortBy = string(personalize.SortRelevance)
	}

	if v, ok := params.Float("minSentiment"); ok {
		req.MinSentiment = &v
	}

	return req, params.Err()
}

// Feed handles GET /api/v1/feed.
//
// The pipeline is fetch, rank, paginate, enrich: all candidate inputs
// are gathered concurrently, the full candidate set is scored and
// filtered, the requested page is sliced out, and bookmark state is
// resolved for the page's articles only.
func (h *FeedHandler) Feed(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, apiErr := h.parseFeedRequest(r)
	if apiErr == nil {
		apiErr = validateRequest(&req)
	}
	if apiErr != nil {
		metrics.ObserveFeedRequest(req.SortBy, "invalid", time.Since(start))
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status: "error",
			Metadata: models.Metadata{
				Timestamp: time.Now(),
				RequestID: logging.RequestIDFromContext(r.Context()),
			},
			Error: apiErr,
		})
		return
	}

	userID := UserIDFromContext(r.Context())

	filters := store.ArticleFilters{
		Limit:       h.cfg.CandidateLimit,
		MaxAgeHours: req.MaxAgeHours,
	}
	if req.MinSentiment != nil {
		filters.MinSentiment = *req.MinSentiment
		filters.HasMinSentiment = true
	}

	pctx := h.fetcher.FetchAll(r.Context(), userID, filters)

	opts := personalize.Options{
		MinRelevanceScore: h.cfg.MinRelevanceScore,
		MaxAgeHours:       req.MaxAgeHours,
		SortBy:            personalize.SortMode(req.SortBy),
		IncludeBookmarks:  req.IncludeBookmarks,
	}
	ranked := h.engine.Rank(pctx, opts)
	page := personalize.Paginate(ranked, req.Page, req.Limit)

	if req.IncludeBookmarks && userID != "" && len(page.Items) > 0 {
		ids := make([]string, len(page.Items))
		for i := range page.Items {
			ids[i] = page.Items[i].ID
		}
		bookmarked := h.fetcher.Bookmarks(r.Context(), userID, ids)
		for i := range page.Items {
			_, page.Items[i].Bookmarked = bookmarked[page.Items[i].ID]
		}
	}

	articles := make([]models.FeedArticle, len(page.Items))
	scores := make(map[string]float64, len(page.Items))
	for i := range page.Items {
		articles[i] = page.Items[i].ToFeedArticle()
		scores[page.Items[i].ID] = page.Items[i].Score
	}

	elapsed := time.Since(start)
	response := models.FeedResponse{
		Articles: articles,
		Pagination: models.PaginationMeta{
			Page:    page.Page,
			Limit:   page.Limit,
			Total:   page.Total,
			HasMore: page.HasMore,
		},
		Personalization: models.PersonalizationMeta{
			UserID:           userID,
			Scores:           scores,
			AppliedFilters:   appliedFilters(req),
			AlgorithmsUsed:   pctx.Perf.AlgorithmsUsed,
			ProcessingTimeMS: elapsed.Milliseconds(),
			CacheHits:        pctx.Perf.CacheHits,
		},
	}

	metrics.ObserveFeedRequest(req.SortBy, "success", elapsed)

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   response,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			RequestID: logging.RequestIDFromContext(r.Context()),
		},
	})
}

// appliedFilters reports the filters in effect for this request.
func appliedFilters(req feedRequest) []string {
	filters := []string{
		fmt.Sprintf("sortBy:%s", req.SortBy),
		fmt.Sprintf("maxAge:%d", req.MaxAgeHours),
	}
	if req.MinSentiment != nil {
		filters = append(filters, fmt.Sprintf("minSentiment:%.2f", *req.MinSentiment))
	}
	if req.IncludeBookmarks {
		filters = append(filters, "includeBookmarks:true")
	}
	return filters
}

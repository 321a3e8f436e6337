// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package personalize

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/briefwire/briefwire/internal/cache"
	"github.com/briefwire/briefwire/internal/config"
	"github.com/briefwire/briefwire/internal/metrics"
	"github.com/briefwire/briefwire/internal/models"
	"github.com/briefwire/briefwire/internal/store"
)

// Cached input kind labels, shared between Perf.CacheHits and metrics.
const (
	kindInterests = "interests"
	kindPortfolio = "portfolio"
	kindArticles  = "articles"
	kindHistory   = "history"
	kindBookmarks = "bookmarks"
)

// Fetcher wraps a DataProvider with the in-process cache and the
// degradation rules: a fetch error is logged and replaced with an empty
// container so ranking stays resilient to partial data loss. Interests,
// portfolio, and the article pool are cache-backed; history is always
// fetched fresh, since it changes with every interaction and staleness
// would bias ranking.
//
// The cache is shared mutable state across requests. Two concurrent
// requests for the same uncached key may both fetch and both write the
// same value; that race is accepted (values are idempotent per key) and
// deliberately not coalesced.
type Fetcher struct {
	provider store.DataProvider
	cache    cache.Cacher
	breaker  *gobreaker.CircuitBreaker[interface{}]
	logger   zerolog.Logger

	historyLimit int
	fetchTimeout time.Duration
}

// NewFetcher creates the cache-backed accessor layer. When the breaker
// is enabled, provider calls trip open after repeated failures so a
// broken backing store sheds load fast while the feed keeps serving
// from cache and empty inputs.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewFetcher(provider store.DataProvider, c cache.Cacher, cfg config.PersonalizationConfig, logger zerolog.Logger) *Fetcher {
	f := &Fetcher{
		provider:     provider,
		cache:        c,
		logger:       logger.With().Str("component", "fetcher").Logger(),
		historyLimit: cfg.HistoryLimit,
		fetchTimeout: cfg.FetchTimeout,
	}

	if cfg.BreakerEnabled {
		f.breaker = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
			Name:    "datastore",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				f.logger.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("circuit breaker state change")
			},
		})
	}

	return f
}

// FetchAll resolves the four scoring inputs for one request. Cacheable
// fetches and the always-fresh history fetch run concurrently; FetchAll
// returns only once all four have resolved.
//
// An anonymous user (empty userID) gets empty personalization inputs,
// which degrades ranking to sentiment and recency signals.
func (f *Fetcher) FetchAll(ctx context.Context, userID string, filters store.ArticleFilters) *Context {
	var (
		interests []models.UserInterest
		portfolio []models.PortfolioHolding
		history   []models.InteractionRecord
		articles  []models.Article

		hitsMu    sync.Mutex
		cacheHits = make(map[string]bool)
	)

	recordCache := func(kind string, hit bool) {
		hitsMu.Lock()
		cacheHits[kind] = hit
		hitsMu.Unlock()
		if hit {
			metrics.CacheHits.WithLabelValues(kind).Inc()
		} else {
			metrics.CacheMisses.WithLabelValues(kind).Inc()
		}
	}

	var wg sync.WaitGroup

	if userID != "" {
		wg.Add(2)
		go func() {
			defer wg.Done()
			interests = f.fetchInterests(ctx, userID, recordCache)
		}()
		go func() {
			defer wg.Done()
			portfolio = f.fetchPortfolio(ctx, userID, recordCache)
		}()
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		articles = f.fetchArticles(ctx, filters, recordCache)
	}()
	go func() {
		defer wg.Done()
		history = f.fetchHistory(ctx, userID)
	}()

	wg.Wait()

	metrics.CacheSize.Set(float64(f.cache.GetStats().Size))

	pctx := NewContext(userID, interests, portfolio, history, articles)
	pctx.Perf.CacheHits = cacheHits
	return pctx
}

func (f *Fetcher) fetchInterests(ctx context.Context, userID string, recordCache func(string, bool)) []models.UserInterest {
	key := cache.InterestsKey(userID)
	if v, ok := f.cache.Get(key); ok {
		if cached, ok := v.([]models.UserInterest); ok {
			recordCache(kindInterests, true)
			return cached
		}
	}
	recordCache(kindInterests, false)

	v, err := f.call(ctx, kindInterests, func(ctx context.Context) (interface{}, error) {
		return f.provider.Interests(ctx, userID)
	})
	if err != nil {
		return nil
	}
	interests := v.([]models.UserInterest)
	f.cache.Set(key, interests)
	return interests
}

func (f *Fetcher) fetchPortfolio(ctx context.Context, userID string, recordCache func(string, bool)) []models.PortfolioHolding {
	key := cache.PortfolioKey(userID)
	if v, ok := f.cache.Get(key); ok {
		if cached, ok := v.([]models.PortfolioHolding); ok {
			recordCache(kindPortfolio, true)
			return cached
		}
	}
	recordCache(kindPortfolio, false)

	v, err := f.call(ctx, kindPortfolio, func(ctx context.Context) (interface{}, error) {
		return f.provider.Portfolio(ctx, userID)
	})
	if err != nil {
		return nil
	}
	portfolio := v.([]models.PortfolioHolding)
	f.cache.Set(key, portfolio)
	return portfolio
}

func (f *Fetcher) fetchArticles(ctx context.Context, filters store.ArticleFilters, recordCache func(string, bool)) []models.Article {
	key := cache.ArticleQueryKey(filters.Limit, filters.Offset, filters.MaxAgeHours,
		filters.MinSentiment, filters.HasMinSentiment)
	if v, ok := f.cache.Get(key); ok {
		if cached, ok := v.([]models.Article); ok {
			recordCache(kindArticles, true)
			return cached
		}
	}
	recordCache(kindArticles, false)

	v, err := f.call(ctx, kindArticles, func(ctx context.Context) (interface{}, error) {
		return f.provider.Articles(ctx, filters)
	})
	if err != nil {
		return nil
	}
	articles := v.([]models.Article)
	f.cache.Set(key, articles)
	return articles
}

// fetchHistory is never cache-backed.
func (f *Fetcher) fetchHistory(ctx context.Context, userID string) []models.InteractionRecord {
	if userID == "" {
		return nil
	}

	v, err := f.call(ctx, kindHistory, func(ctx context.Context) (interface{}, error) {
		return f.provider.History(ctx, userID, f.historyLimit)
	})
	if err != nil {
		return nil
	}
	return v.([]models.InteractionRecord)
}

// Bookmarks resolves bookmark membership for the given article IDs,
// typically just the IDs on the returned page so the enrichment cost is
// bounded by page size, not corpus size. Degrades to an empty set on
// error.
func (f *Fetcher) Bookmarks(ctx context.Context, userID string, articleIDs []string) map[string]struct{} {
	if userID == "" || len(articleIDs) == 0 {
		return map[string]struct{}{}
	}

	v, err := f.call(ctx, kindBookmarks, func(ctx context.Context) (interface{}, error) {
		return f.provider.Bookmarks(ctx, userID, articleIDs)
	})
	if err != nil {
		return map[string]struct{}{}
	}
	return v.(map[string]struct{})
}

// call runs one provider query through the fetch timeout and the
// circuit breaker. Errors are logged and counted; the caller substitutes
// an empty container.
func (f *Fetcher) call(ctx context.Context, source string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	if f.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.fetchTimeout)
		defer cancel()
	}

	var (
		v   interface{}
		err error
	)
	if f.breaker != nil {
		v, err = f.breaker.Execute(func() (interface{}, error) {
			return fn(ctx)
		})
	} else {
		v, err = fn(ctx)
	}

	if err != nil {
		metrics.AccessorErrors.WithLabelValues(source).Inc()
		f.logger.Warn().
			Err(err).
			Str("source", source).
			Msg("fetch degraded to empty")
		return nil, err
	}
	return v, nil
}

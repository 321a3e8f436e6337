// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package personalize

import (
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/briefwire/briefwire/internal/config"
	"github.com/briefwire/briefwire/internal/metrics"
	"github.com/briefwire/briefwire/internal/models"
)

// Engine computes relevance scores and produces the filtered, ordered
// ranked list. It is stateless across requests and safe for concurrent
// use; all configuration is injected at construction.
type Engine struct {
	cfg    config.PersonalizationConfig
	logger zerolog.Logger
}

// NewEngine creates a ranking engine with the given configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg config.PersonalizationConfig, logger zerolog.Logger) *Engine {
	return &Engine{
		cfg:    cfg,
		logger: logger.With().Str("component", "personalize").Logger(),
	}
}

// Rank transforms the context's candidate articles into a filtered list
// ordered by score descending. Ties are broken by publication time
// descending, then article ID ascending, so repeated requests with
// identical inputs paginate identically.
//
// In SortLatest mode scoring is bypassed entirely and articles are
// ordered strictly by publication time.
//
// Rank updates the context's performance-metrics slot as a side effect.
// It never fails: missing or malformed per-article data contributes
// zero to the affected component.
func (e *Engine) Rank(pctx *Context, opts Options) []models.RankedArticle {
	start := time.Now()

	opts = e.applyDefaults(opts)

	var ranked []models.RankedArticle
	if opts.SortBy == SortLatest {
		ranked = e.rankLatest(pctx)
	} else {
		ranked = e.rankByRelevance(pctx, opts)
	}

	elapsed := time.Since(start)
	pctx.Perf.ProcessingTime = elapsed
	metrics.ObserveRanking(elapsed, len(pctx.Articles))

	e.logger.Debug().
		Str("user_id", pctx.UserID).
		Str("sort_by", string(opts.SortBy)).
		Int("candidates", len(pctx.Articles)).
		Int("ranked", len(ranked)).
		Dur("elapsed", elapsed).
		Msg("ranking complete")

	return ranked
}

// applyDefaults fills zero-valued options from the engine config.
func (e *Engine) applyDefaults(opts Options) Options {
	if opts.SortBy == "" {
		opts.SortBy = SortRelevance
	}
	if opts.MaxAgeHours <= 0 {
		opts.MaxAgeHours = e.cfg.DefaultMaxAgeHours
	}
	if opts.Weights == (config.Weights{}) {
		opts.Weights = e.cfg.Weights
	}
	return opts
}

// rankLatest orders strictly by publication time descending, ID
// ascending on ties. Relevance weights are ignored entirely.
func (e *Engine) rankLatest(pctx *Context) []models.RankedArticle {
	ranked := make([]models.RankedArticle, 0, len(pctx.Articles))
	for i := range pctx.Articles {
		ranked = append(ranked, models.RankedArticle{Article: pctx.Articles[i]})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if !ranked[i].PublishedAt.Equal(ranked[j].PublishedAt) {
			return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
		}
		return ranked[i].ID < ranked[j].ID
	})

	pctx.Perf.AlgorithmsUsed = []string{AlgorithmLatest}
	return ranked
}

// rankByRelevance runs the weighted-signal scoring pass.
func (e *Engine) rankByRelevance(pctx *Context, opts Options) []models.RankedArticle {
	now := time.Now()
	window := time.Duration(opts.MaxAgeHours) * time.Hour

	idx := buildKeywordIndex(pctx.Interests)
	affinity := sentimentAffinity(pctx.History)
	weights := opts.Weights

	ranked := make([]models.RankedArticle, 0, len(pctx.Articles))
	for i := range pctx.Articles {
		article := &pctx.Articles[i]

		// Re-check the recency window; the upstream fetch already
		// applied it but the engine must not rely on that.
		if article.Age(now) > window {
			continue
		}

		score := weights.KeywordMatch*keywordMatchScore(article, idx) +
			weights.SymbolMatch*symbolMatchScore(article, pctx.Portfolio) +
			weights.Sentiment*sentimentScore(article, affinity) +
			weights.TimeDecay*timeDecayScore(article, now, window)

		if score < opts.MinRelevanceScore {
			continue
		}

		ranked = append(ranked, models.RankedArticle{
			Article: *article,
			Score:   score,
		})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		if !ranked[i].PublishedAt.Equal(ranked[j].PublishedAt) {
			return ranked[i].PublishedAt.After(ranked[j].PublishedAt)
		}
		return ranked[i].ID < ranked[j].ID
	})

	pctx.Perf.AlgorithmsUsed = e.algorithmsUsed(pctx, idx)
	return ranked
}

// algorithmsUsed reports the components whose inputs were non-empty.
// Sentiment and time decay always run; keyword and symbol matching are
// omitted when the user has no interests or no portfolio.
func (e *Engine) algorithmsUsed(pctx *Context, idx keywordIndex) []string {
	used := make([]string, 0, 4)
	if !idx.empty() {
		used = append(used, AlgorithmKeywordMatch)
	}
	if len(pctx.Portfolio) > 0 {
		used = append(used, AlgorithmSymbolMatch)
	}
	used = append(used, AlgorithmSentiment, AlgorithmTimeDecay)
	return used
}

// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

// Package metrics provides Prometheus instrumentation for Briefwire:
// feed request latency, ranking performance, cache efficiency, and data
// accessor health. The personalization engine reports into these metrics
// but never depends on them for correctness.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FeedRequestDuration measures end-to-end feed request latency.
	FeedRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "briefwire_feed_request_duration_seconds",
			Help:    "Duration of personalized feed requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"sort_by", "status"},
	)

	// RankingDuration measures the scoring pass alone.
	RankingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "briefwire_ranking_duration_seconds",
			Help:    "Duration of the relevance scoring pass in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	// ArticlesRanked counts articles scored per request.
	ArticlesRanked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "briefwire_articles_ranked_total",
			Help: "Total number of articles scored by the ranking engine",
		},
	)

	// CacheHits counts cache hits per cached input kind.
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefwire_cache_hits_total",
			Help: "Total number of personalization cache hits",
		},
		[]string{"kind"}, // "interests", "portfolio", "articles"
	)

	// CacheMisses counts cache misses per cached input kind.
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefwire_cache_misses_total",
			Help: "Total number of personalization cache misses",
		},
		[]string{"kind"},
	)

	// CacheSize reports the current entry count of the shared cache.
	CacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "briefwire_cache_entries",
			Help: "Current number of entries in the personalization cache",
		},
	)

	// AccessorErrors counts degraded fetches per data source.
	AccessorErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "briefwire_accessor_errors_total",
			Help: "Total number of data accessor fetch failures (degraded to empty)",
		},
		[]string{"source"}, // "interests", "portfolio", "history", "articles", "bookmarks"
	)

	// HTTPRequestDuration measures all HTTP requests by route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "briefwire_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ActiveRequests tracks in-flight HTTP requests.
	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "briefwire_http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(start bool) {
	if start {
		ActiveRequests.Inc()
	} else {
		ActiveRequests.Dec()
	}
}

// RecordHTTPRequest records one completed HTTP request.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveFeedRequest records a completed feed request.
func ObserveFeedRequest(sortBy, status string, duration time.Duration) {
	FeedRequestDuration.WithLabelValues(sortBy, status).Observe(duration.Seconds())
}

// ObserveRanking records a completed scoring pass.
func ObserveRanking(duration time.Duration, articleCount int) {
	RankingDuration.Observe(duration.Seconds())
	ArticlesRanked.Add(float64(articleCount))
}

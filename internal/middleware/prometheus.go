// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/briefwire/briefwire/internal/metrics"
)

// PrometheusMetrics instruments every request with duration and
// in-flight gauges. The route pattern is not available here, so the
// raw path is used; Briefwire's route surface is small enough that
// cardinality stays bounded.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		start := time.Now()

		ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(ww, r)

		metrics.RecordHTTPRequest(
			r.Method,
			r.URL.Path,
			strconv.Itoa(ww.status),
			time.Since(start),
		)
	})
}

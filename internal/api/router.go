// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/briefwire/briefwire/internal/auth"
	"github.com/briefwire/briefwire/internal/config"
	"github.com/briefwire/briefwire/internal/middleware"
)

// Router wires handlers and middleware into the HTTP surface.
type Router struct {
	feed       *FeedHandler
	health     *HealthHandler
	jwt        *auth.JWTManager
	middleware *ChiMiddleware
	timeout    time.Duration
}

// NewRouter creates the router. jwtManager may be nil, in which case
// every request is served anonymously.
func NewRouter(feed *FeedHandler, health *HealthHandler, jwtManager *auth.JWTManager, cfg config.ServerConfig) *Router {
	mwConfig := DefaultChiMiddlewareConfig()
	mwConfig.CORSAllowedOrigins = cfg.CORSOrigins
	mwConfig.RateLimitRequests = cfg.RateLimit
	mwConfig.RateLimitDisabled = cfg.RateLimit <= 0

	return &Router{
		feed:       feed,
		health:     health,
		jwt:        jwtManager,
		middleware: NewChiMiddleware(mwConfig),
		timeout:    cfg.HandlerTimeout,
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.middleware.CORS())
	if router.timeout > 0 {
		r.Use(chimiddleware.Timeout(router.timeout))
	}

	// Health probes get a permissive rate limit so monitoring can poll
	// frequently.
	r.Group(func(r chi.Router) {
		r.Use(router.middleware.RateLimitHealth())
		r.Get("/health", router.health.Health)
	})

	// Feed API.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.middleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(OptionalAuth(router.jwt))

		r.Get("/feed", router.feed.Feed)
	})

	// Observability.
	r.Handle("/metrics", promhttp.Handler())

	return r
}

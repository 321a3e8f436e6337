// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

// Package config provides layered configuration for Briefwire via
// Koanf v2: struct defaults, then an optional YAML file, then
// BRIEFWIRE_-prefixed environment variables (highest priority).
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Briefwire server.
type Config struct {
	Server          ServerConfig          `koanf:"server"`
	Database        DatabaseConfig        `koanf:"database"`
	Cache           CacheConfig           `koanf:"cache"`
	Personalization PersonalizationConfig `koanf:"personalization"`
	Auth            AuthConfig            `koanf:"auth"`
	Logging         LoggingConfig         `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`

	// HandlerTimeout is the per-request deadline. The personalization
	// pass must finish within it; the engine itself carries no timeout.
	HandlerTimeout time.Duration `koanf:"handler_timeout"`

	// RateLimit is the per-IP request budget per minute. Zero disables
	// rate limiting.
	RateLimit int `koanf:"rate_limit"`

	// CORSOrigins lists allowed CORS origins. Empty allows none.
	CORSOrigins []string `koanf:"cors_origins"`
}

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	// Path is the SQLite database file, or ":memory:".
	Path string `koanf:"path"`
}

// CacheConfig holds the in-process cache settings.
type CacheConfig struct {
	// Type selects the implementation: "lru" (bounded, default) or
	// "ttl" (capacity advisory only).
	Type string `koanf:"type"`

	TTL      time.Duration `koanf:"ttl"`
	Capacity int           `koanf:"capacity"`
}

// Weights are the relative contributions of the four scoring signals.
// The engine uses the weighted sum as-is; they need not sum to 1.0.
type Weights struct {
	KeywordMatch float64 `koanf:"keyword_match"`
	SymbolMatch  float64 `koanf:"symbol_match"`
	Sentiment    float64 `koanf:"sentiment"`
	TimeDecay    float64 `koanf:"time_decay"`
}

// Sum returns the total weight mass.
func (w Weights) Sum() float64 {
	return w.KeywordMatch + w.SymbolMatch + w.Sentiment + w.TimeDecay
}

// Normalize returns a copy scaled to sum to 1.0. All-zero weights
// normalize to the default weights.
//
//nolint:gocritic // value receiver is intentional for immutable semantics
func (w Weights) Normalize() Weights {
	sum := w.Sum()
	if sum == 0 {
		return DefaultWeights()
	}
	return Weights{
		KeywordMatch: w.KeywordMatch / sum,
		SymbolMatch:  w.SymbolMatch / sum,
		Sentiment:    w.Sentiment / sum,
		TimeDecay:    w.TimeDecay / sum,
	}
}

// DefaultWeights is the reference default signal weighting.
func DefaultWeights() Weights {
	return Weights{
		KeywordMatch: 0.4,
		SymbolMatch:  0.3,
		Sentiment:    0.15,
		TimeDecay:    0.15,
	}
}

// PersonalizationConfig holds the ranking engine settings.
type PersonalizationConfig struct {
	Weights Weights `koanf:"weights"`

	// MinRelevanceScore is the hard score floor; articles below it are
	// excluded from the feed. Kept low by default to preserve variety.
	MinRelevanceScore float64 `koanf:"min_relevance_score"`

	// DefaultMaxAgeHours is the candidate recency window when the
	// caller does not supply maxAge.
	DefaultMaxAgeHours int `koanf:"default_max_age_hours"`

	// CandidateLimit bounds the candidate pool fetched from storage.
	CandidateLimit int `koanf:"candidate_limit"`

	// HistoryLimit bounds the interaction history fetched per request.
	HistoryLimit int `koanf:"history_limit"`

	// FetchTimeout bounds each data fetch. Zero disables the per-fetch
	// deadline; the request context still applies.
	FetchTimeout time.Duration `koanf:"fetch_timeout"`

	// BreakerEnabled wraps data fetches in a circuit breaker so a
	// failing backing store sheds load fast.
	BreakerEnabled bool `koanf:"breaker_enabled"`
}

// AuthConfig holds token verification settings.
type AuthConfig struct {
	// JWTSecret verifies bearer tokens. Empty means every request is
	// treated as anonymous.
	JWTSecret string `koanf:"jwt_secret"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Cache.Capacity < 0 {
		return fmt.Errorf("cache.capacity must not be negative, got %d", c.Cache.Capacity)
	}

	p := c.Personalization
	if p.Weights.KeywordMatch < 0 || p.Weights.SymbolMatch < 0 ||
		p.Weights.Sentiment < 0 || p.Weights.TimeDecay < 0 {
		return fmt.Errorf("personalization.weights must be non-negative")
	}
	if p.MinRelevanceScore < 0 || p.MinRelevanceScore > 1 {
		return fmt.Errorf("personalization.min_relevance_score must be in [0, 1], got %v", p.MinRelevanceScore)
	}
	if p.DefaultMaxAgeHours < 1 || p.DefaultMaxAgeHours > 720 {
		return fmt.Errorf("personalization.default_max_age_hours must be in [1, 720], got %d", p.DefaultMaxAgeHours)
	}
	if p.CandidateLimit < 1 {
		return fmt.Errorf("personalization.candidate_limit must be positive, got %d", p.CandidateLimit)
	}

	return nil
}

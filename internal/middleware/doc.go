// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

// Package middleware provides HTTP middleware shared across routes:
// request ID propagation with logging context, and Prometheus request
// instrumentation.
package middleware

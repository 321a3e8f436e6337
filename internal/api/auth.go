// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/briefwire/briefwire/internal/auth"
	"github.com/briefwire/briefwire/internal/logging"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserIDFromContext returns the authenticated user ID, or empty when
// the request is anonymous.
func UserIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// contextWithUserID is used by tests to simulate an authenticated
// request without minting a token.
func contextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// OptionalAuth resolves an Authorization bearer token to a user ID in
// the request context. Personalization is an enhancement, not a gate:
// an absent, malformed, or invalid token degrades the request to
// anonymous instead of rejecting it. A nil manager (no secret
// configured) treats every request as anonymous.
func OptionalAuth(manager *auth.JWTManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := manager.ValidateToken(token)
			if err != nil {
				logging.Ctx(r.Context()).Debug().
					Err(err).
					Msg("invalid bearer token, serving anonymous feed")
				next.ServeHTTP(w, r)
				return
			}

			ctx := contextWithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

// Package auth provides JWT bearer token verification. Briefwire does
// not issue sessions itself; tokens come from an upstream identity
// service and only the subject claim is consumed.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims represents the JWT claims Briefwire consumes. The subject
// claim carries the user ID.
type Claims struct {
	jwt.RegisteredClaims
}

// JWTManager validates bearer tokens with a shared HMAC secret.
type JWTManager struct {
	secret []byte
}

// NewJWTManager creates a token manager. An empty secret is rejected;
// callers that want anonymous-only operation should not construct a
// manager at all.
func NewJWTManager(secret string) (*JWTManager, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt secret is required but was empty")
	}

	return &JWTManager{secret: []byte(secret)}, nil
}

// GenerateToken creates a signed token for the given user ID, valid
// for the given lifetime. Used by tests and local tooling; production
// tokens are minted upstream.
func (m *JWTManager) GenerateToken(userID string, lifetime time.Duration) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, nil
}

// ValidateToken verifies the signature, algorithm, and time claims and
// returns the user ID from the subject claim.
//
// Only HMAC signing is accepted; tokens claiming RS256 or "none" are
// rejected to prevent algorithm confusion attacks.
func (m *JWTManager) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token claims")
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject")
	}

	return claims.Subject, nil
}

// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package auth

import (
	"testing"
	"time"
)

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	if _, err := NewJWTManager(""); err == nil {
		t.Error("Expected error for empty secret")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewJWTManager("test-secret-at-least-32-characters")
	if err != nil {
		t.Fatalf("NewJWTManager failed: %v", err)
	}

	token, err := m.GenerateToken("user-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	userID, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if userID != "user-42" {
		t.Errorf("Subject = %q, want user-42", userID)
	}
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m, _ := NewJWTManager("test-secret-at-least-32-characters")

	token, err := m.GenerateToken("user-42", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := m.ValidateToken(token); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewJWTManager("issuer-secret-at-least-32-chars!")
	verifier, _ := NewJWTManager("different-secret-32-characters!!")

	token, err := issuer.GenerateToken("user-42", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("Expected error for token signed with a different secret")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m, _ := NewJWTManager("test-secret-at-least-32-characters")

	if _, err := m.ValidateToken("not.a.token"); err == nil {
		t.Error("Expected error for malformed token")
	}
}

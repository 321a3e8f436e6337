// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"

	// Register the pure-Go sqlite driver.
	_ "modernc.org/sqlite"

	"github.com/briefwire/briefwire/internal/models"
)

// SQLite implements DataProvider over an embedded SQLite database.
type SQLite struct {
	db *sql.DB
}

// schema creates the tables Briefwire reads. The ingestion pipeline that
// writes articles and interactions lives outside this service.
const schema = `
CREATE TABLE IF NOT EXISTS articles (
	id              TEXT PRIMARY KEY,
	title           TEXT NOT NULL,
	summary         TEXT NOT NULL DEFAULT '',
	content         TEXT NOT NULL DEFAULT '',
	source          TEXT NOT NULL DEFAULT '',
	published_at    TIMESTAMP NOT NULL,
	keywords        TEXT NOT NULL DEFAULT '[]',
	symbols         TEXT NOT NULL DEFAULT '[]',
	sentiment_raw   REAL NOT NULL DEFAULT 50,
	sentiment_label TEXT NOT NULL DEFAULT 'neutral',
	image_url       TEXT NOT NULL DEFAULT '',
	action_url      TEXT NOT NULL DEFAULT '',
	is_active       INTEGER NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_articles_active_published
	ON articles(is_active, published_at DESC);

CREATE TABLE IF NOT EXISTS user_interests (
	user_id  TEXT NOT NULL,
	category TEXT NOT NULL,
	keywords TEXT NOT NULL DEFAULT '[]',
	priority INTEGER NOT NULL DEFAULT 3,
	PRIMARY KEY (user_id, category)
);

CREATE TABLE IF NOT EXISTS portfolio_holdings (
	user_id        TEXT NOT NULL,
	symbol         TEXT NOT NULL,
	allocation     REAL NOT NULL DEFAULT 0,
	purchase_price REAL NOT NULL DEFAULT 0,
	quantity       REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (user_id, symbol)
);

CREATE TABLE IF NOT EXISTS interactions (
	user_id         TEXT NOT NULL,
	article_id      TEXT NOT NULL,
	relevance_score REAL NOT NULL DEFAULT 0,
	read            INTEGER NOT NULL DEFAULT 0,
	bookmarked      INTEGER NOT NULL DEFAULT 0,
	liked           INTEGER NOT NULL DEFAULT 0,
	metadata        TEXT NOT NULL DEFAULT '{}',
	created_at      TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_interactions_user_created
	ON interactions(user_id, created_at DESC);
`

// OpenSQLite opens (or creates) the database at path and bootstraps the
// schema. Use ":memory:" for tests.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// DB exposes the underlying handle for seeding in tests.
func (s *SQLite) DB() *sql.DB {
	return s.db
}

// Ping verifies the database connection, for health checks.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Interests returns the user's declared interests.
func (s *SQLite) Interests(ctx context.Context, userID string) ([]models.UserInterest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, category, keywords, priority
		 FROM user_interests WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query interests: %w", err)
	}
	defer rows.Close()

	var interests []models.UserInterest
	for rows.Next() {
		var interest models.UserInterest
		var keywordsJSON string
		if err := rows.Scan(&interest.UserID, &interest.Category, &keywordsJSON, &interest.Priority); err != nil {
			return nil, fmt.Errorf("scan interest: %w", err)
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &interest.Keywords); err != nil {
			return nil, fmt.Errorf("decode interest keywords: %w", err)
		}
		interests = append(interests, interest)
	}
	return interests, rows.Err()
}

// Portfolio returns the user's portfolio holdings.
func (s *SQLite) Portfolio(ctx context.Context, userID string) ([]models.PortfolioHolding, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, symbol, allocation, purchase_price, quantity
		 FROM portfolio_holdings WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("query portfolio: %w", err)
	}
	defer rows.Close()

	var holdings []models.PortfolioHolding
	for rows.Next() {
		var h models.PortfolioHolding
		if err := rows.Scan(&h.UserID, &h.Symbol, &h.Allocation, &h.PurchasePrice, &h.Quantity); err != nil {
			return nil, fmt.Errorf("scan holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

// History returns the user's most recent interactions, newest first.
func (s *SQLite) History(ctx context.Context, userID string, limit int) ([]models.InteractionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT user_id, article_id, relevance_score, read, bookmarked, liked, metadata, created_at
		 FROM interactions WHERE user_id = ?
		 ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []models.InteractionRecord
	for rows.Next() {
		var rec models.InteractionRecord
		var metadataJSON string
		if err := rows.Scan(&rec.UserID, &rec.ArticleID, &rec.RelevanceScore,
			&rec.Read, &rec.Bookmarked, &rec.Liked, &metadataJSON, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interaction: %w", err)
		}
		if err := json.Unmarshal([]byte(metadataJSON), &rec.Metadata); err != nil {
			return nil, fmt.Errorf("decode interaction metadata: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Articles returns the active candidate pool, newest first. The recency
// cutoff and pool pagination run in SQL; the minSentiment filter runs in
// Go after raw-to-normalized conversion.
func (s *SQLite) Articles(ctx context.Context, filters ArticleFilters) ([]models.Article, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	maxAge := filters.MaxAgeHours
	if maxAge <= 0 {
		maxAge = 168
	}
	cutoff := time.Now().Add(-time.Duration(maxAge) * time.Hour)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, summary, content, source, published_at,
		        keywords, symbols, sentiment_raw, sentiment_label,
		        image_url, action_url, is_active
		 FROM articles
		 WHERE is_active = 1 AND published_at >= ?
		 ORDER BY published_at DESC
		 LIMIT ? OFFSET ?`, cutoff, limit, filters.Offset)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	defer rows.Close()

	var articles []models.Article
	for rows.Next() {
		var a models.Article
		var keywordsJSON, symbolsJSON string
		var sentimentRaw float64
		if err := rows.Scan(&a.ID, &a.Title, &a.Summary, &a.Content, &a.Source,
			&a.PublishedAt, &keywordsJSON, &symbolsJSON, &sentimentRaw,
			&a.SentimentLabel, &a.ImageURL, &a.ActionURL, &a.IsActive); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		if err := json.Unmarshal([]byte(keywordsJSON), &a.Keywords); err != nil {
			return nil, fmt.Errorf("decode article keywords: %w", err)
		}
		if err := json.Unmarshal([]byte(symbolsJSON), &a.Symbols); err != nil {
			return nil, fmt.Errorf("decode article symbols: %w", err)
		}

		a.SentimentScore = NormalizeSentiment(sentimentRaw)
		if filters.HasMinSentiment && a.SentimentScore < filters.MinSentiment {
			continue
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// Bookmarks returns the subset of articleIDs the user has bookmarked.
func (s *SQLite) Bookmarks(ctx context.Context, userID string, articleIDs []string) (map[string]struct{}, error) {
	bookmarked := make(map[string]struct{})
	if len(articleIDs) == 0 {
		return bookmarked, nil
	}

	placeholders := strings.Repeat("?,", len(articleIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]interface{}, 0, len(articleIDs)+1)
	args = append(args, userID)
	for _, id := range articleIDs {
		args = append(args, id)
	}

	//nolint:gosec // placeholders contains only "?," repetitions
	query := fmt.Sprintf(
		`SELECT DISTINCT article_id FROM interactions
		 WHERE user_id = ? AND bookmarked = 1 AND article_id IN (%s)`, placeholders)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		bookmarked[id] = struct{}{}
	}
	return bookmarked, rows.Err()
}

// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package personalize

import (
	"fmt"
	"testing"

	"github.com/briefwire/briefwire/internal/models"
)

func rankedFixture(n int) []models.RankedArticle {
	ranked := make([]models.RankedArticle, 0, n)
	for i := 0; i < n; i++ {
		ranked = append(ranked, models.RankedArticle{
			Article: models.Article{ID: fmt.Sprintf("a%02d", i)},
			Score:   1 - float64(i)*0.01,
		})
	}
	return ranked
}

func TestPaginateHasMore(t *testing.T) {
	ranked := rankedFixture(25)

	tests := []struct {
		page     int
		limit    int
		wantLen  int
		wantMore bool
	}{
		{1, 10, 10, true},
		{2, 10, 10, true},
		{3, 10, 5, false},
		{4, 10, 0, false},
		{1, 25, 25, false},
		{1, 100, 25, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page=%d,limit=%d", tt.page, tt.limit), func(t *testing.T) {
			p := Paginate(ranked, tt.page, tt.limit)
			if len(p.Items) != tt.wantLen {
				t.Errorf("Got %d items, want %d", len(p.Items), tt.wantLen)
			}
			if p.HasMore != tt.wantMore {
				t.Errorf("HasMore = %v, want %v", p.HasMore, tt.wantMore)
			}
			if p.Total != 25 {
				t.Errorf("Total = %d, want 25", p.Total)
			}
		})
	}
}

func TestPaginateCoercion(t *testing.T) {
	ranked := rankedFixture(10)

	// page < 1 coerces to 1
	p := Paginate(ranked, 0, 5)
	if p.Page != 1 || len(p.Items) != 5 || p.Items[0].ID != "a00" {
		t.Errorf("Expected page coerced to 1, got page=%d first=%s", p.Page, p.Items[0].ID)
	}

	// limit clamped to [1, 100]
	p = Paginate(ranked, 1, 0)
	if p.Limit != 1 || len(p.Items) != 1 {
		t.Errorf("Expected limit coerced to 1, got limit=%d len=%d", p.Limit, len(p.Items))
	}
	p = Paginate(ranked, 1, 500)
	if p.Limit != 100 {
		t.Errorf("Expected limit clamped to 100, got %d", p.Limit)
	}
}

func TestPaginateOutOfRangePage(t *testing.T) {
	ranked := rankedFixture(5)

	p := Paginate(ranked, 99, 10)
	if len(p.Items) != 0 {
		t.Errorf("Expected empty items for out-of-range page, got %d", len(p.Items))
	}
	if p.HasMore {
		t.Error("Expected HasMore=false for out-of-range page")
	}
}

func TestPaginateEmptyList(t *testing.T) {
	p := Paginate(nil, 1, 10)
	if len(p.Items) != 0 || p.HasMore || p.Total != 0 {
		t.Errorf("Expected empty page for empty list, got %+v", p)
	}
}

func TestPaginateRoundTrip(t *testing.T) {
	ranked := rankedFixture(25)
	limit := 10

	var reassembled []string
	for page := 1; ; page++ {
		p := Paginate(ranked, page, limit)
		for _, item := range p.Items {
			reassembled = append(reassembled, item.ID)
		}
		if !p.HasMore {
			break
		}
	}

	if len(reassembled) != len(ranked) {
		t.Fatalf("Round trip produced %d items, want %d", len(reassembled), len(ranked))
	}
	seen := make(map[string]int)
	for i, id := range reassembled {
		seen[id]++
		if id != ranked[i].ID {
			t.Errorf("Order broken at %d: got %s, want %s", i, id, ranked[i].ID)
		}
	}
	for id, count := range seen {
		if count != 1 {
			t.Errorf("Article %s appeared %d times", id, count)
		}
	}
}

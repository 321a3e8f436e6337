// Briefwire - Personalized Financial News Feed
// Copyright 2026 Briefwire Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/briefwire/briefwire

package personalize

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/briefwire/briefwire/internal/models"
)

// maxPriority is the top of the interest priority scale.
const maxPriority = 5

// decayRate controls the exponential time-decay curve: an article at the
// far edge of the recency window scores e^-decayRate (~0.05).
const decayRate = 3.0

// keywordIndex is a priority-weighted term table built once per request
// from the user's interests.
type keywordIndex struct {
	// weights maps a lowercased term to its weight in (0, 1]. A term
	// claimed by several interests keeps the highest weight.
	weights map[string]float64

	// totalWeight is the sum of all term weights, the normalization
	// denominator for the overlap score.
	totalWeight float64
}

// buildKeywordIndex collects the union of interest keywords (the
// category label counts as a term too) weighted by interest priority,
// so higher-priority interests contribute proportionally more.
func buildKeywordIndex(interests []models.UserInterest) keywordIndex {
	idx := keywordIndex{weights: make(map[string]float64)}

	for _, interest := range interests {
		priority := interest.Priority
		if priority < 1 {
			priority = 1
		}
		if priority > maxPriority {
			priority = maxPriority
		}
		weight := float64(priority) / maxPriority

		terms := make([]string, 0, len(interest.Keywords)+1)
		if interest.Category != "" {
			terms = append(terms, interest.Category)
		}
		terms = append(terms, interest.Keywords...)

		for _, term := range terms {
			term = strings.ToLower(strings.TrimSpace(term))
			if term == "" {
				continue
			}
			if weight > idx.weights[term] {
				idx.weights[term] = weight
			}
		}
	}

	for _, w := range idx.weights {
		idx.totalWeight += w
	}
	return idx
}

// empty reports whether the index has no terms to match against.
func (idx keywordIndex) empty() bool {
	return idx.totalWeight == 0
}

// keywordMatchScore is the priority-weighted overlap between the
// article's keyword tags and the user's interest terms, scaled into
// [0, 1]. Missing keywords contribute zero, never an error.
func keywordMatchScore(article *models.Article, idx keywordIndex) float64 {
	if idx.empty() || len(article.Keywords) == 0 {
		return 0
	}

	matched := 0.0
	seen := make(map[string]struct{}, len(article.Keywords))
	for _, keyword := range article.Keywords {
		term := strings.ToLower(strings.TrimSpace(keyword))
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		matched += idx.weights[term]
	}

	return matched / idx.totalWeight
}

// symbolMatchScore reflects whether any portfolio holding's symbol
// appears among the article's related symbols. When allocation weights
// are known a heavier position scores higher, but any match scores at
// least 0.5. The result is in [0, 1].
func symbolMatchScore(article *models.Article, holdings []models.PortfolioHolding) float64 {
	if len(holdings) == 0 || len(article.Symbols) == 0 {
		return 0
	}

	symbols := make(map[string]struct{}, len(article.Symbols))
	for _, s := range article.Symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			symbols[s] = struct{}{}
		}
	}

	matchedCount := 0
	matchedAllocation := 0.0
	for _, holding := range holdings {
		symbol := strings.ToUpper(strings.TrimSpace(holding.Symbol))
		if _, ok := symbols[symbol]; !ok {
			continue
		}
		matchedCount++
		if holding.Allocation > 0 {
			matchedAllocation += holding.Allocation
		}
	}

	if matchedCount == 0 {
		return 0
	}
	if matchedAllocation == 0 {
		// Allocations unknown: presence alone is a full match.
		return 1
	}
	return 0.5 + 0.5*math.Min(matchedAllocation, 1)
}

// sentimentAffinity derives the user's preferred sentiment direction in
// [-1, 1] from positive interactions whose metadata recorded the
// article sentiment at interaction time. Absent history, or history
// without sentiment metadata, yields 0 (neutral).
func sentimentAffinity(history []models.InteractionRecord) float64 {
	sum := 0.0
	count := 0
	for _, record := range history {
		if !record.Positive() {
			continue
		}
		raw, ok := record.Metadata["sentiment"]
		if !ok {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			// Malformed metadata is a zero contribution, not an error.
			continue
		}
		sum += clampSentiment(value)
		count++
	}

	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// sentimentScore measures alignment between the article's normalized
// sentiment and the user's affinity: 1 at perfect alignment, falling
// linearly with distance. A neutral affinity favors balanced coverage
// over extremes. The result is in [0, 1].
func sentimentScore(article *models.Article, affinity float64) float64 {
	sentiment := clampSentiment(article.SentimentScore)
	return 1 - math.Abs(sentiment-affinity)/2
}

// timeDecayScore decreases monotonically with article age relative to
// the recency window. The result is in (0, 1] for in-window articles
// and never goes negative.
func timeDecayScore(article *models.Article, now time.Time, window time.Duration) float64 {
	if window <= 0 {
		return 0
	}
	age := now.Sub(article.PublishedAt)
	if age < 0 {
		// Scheduled or clock-skewed articles count as fresh.
		age = 0
	}
	return math.Exp(-decayRate * age.Seconds() / window.Seconds())
}

func clampSentiment(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

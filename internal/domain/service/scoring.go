package service

import (
	"time"

	"MarketLens/internal/domain/models"
)

// TickerMatcher scores one article against one ticker.
type TickerMatcher interface {
	Match(article models.Article, symbol string) (models.TickerMatch, bool)
}

// Attributor applies the matcher across a ticker universe for a batch.
type Attributor interface {
	Attribute(articles []models.Article, tickers []string) map[string][]models.ScoredArticle
}

// Deduplicator collapses duplicate and near-duplicate articles.
type Deduplicator interface {
	Dedupe(articles []models.Article) []models.Article
}

// Ranker orders a ticker's article list by composite score at an instant.
// Score exposes the per-article composite so callers can rank paired
// structures without rebuilding the article slice.
type Ranker interface {
	Score(article models.Article, now time.Time) float64
	Rank(articles []models.Article, now time.Time) []models.Article
}

// MacroGrouper clusters macro-scoped articles into named events.
type MacroGrouper interface {
	Group(articles []models.Article) []models.MacroEvent
	Summarize(events []models.MacroEvent, topN int) []string
}

// ConfidenceScorer attributes a price move to earnings with a 0-100 score.
type ConfidenceScorer interface {
	Score(input ConfidenceInput) models.EarningsConfidence
}

// ConfidenceInput is everything the confidence scorer looks at. All data is
// caller-supplied; the scorer performs no I/O.
type ConfidenceInput struct {
	Symbol          string
	Now             time.Time
	Quote           models.QuoteSnapshot
	Earnings        *models.EarningsRecord
	RecentHeadlines []string
	AnalystActions  int
}

// QualityScorer grades an earnings report's beat/miss quality.
type QualityScorer interface {
	Score(rec models.EarningsRecord) models.BeatQuality
}

package repository

import (
	"context"

	"MarketLens/internal/domain/models"
)

// Publisher emits scored attribution results to downstream consumers.
type Publisher interface {
	PublishMatches(ctx context.Context, symbol string, articles []models.ScoredArticle) error
	Close() error
}

// Metrics records scoring observability counters.
type Metrics interface {
	RecordArticlesScored(n int)
	RecordMatch(symbol string, matchType string)
	RecordRejection(reason string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}

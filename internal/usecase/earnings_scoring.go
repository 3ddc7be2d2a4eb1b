package usecase

import (
	"time"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	domsvc "MarketLens/internal/domain/service"
)

// EarningsScoring fronts the two earnings scorers for the API layer.
type EarningsScoring struct {
	confidence domsvc.ConfidenceScorer
	quality    domsvc.QualityScorer
	metrics    domrepo.Metrics
}

func NewEarningsScoring(confidence domsvc.ConfidenceScorer, quality domsvc.QualityScorer, metrics domrepo.Metrics) *EarningsScoring {
	return &EarningsScoring{confidence: confidence, quality: quality, metrics: metrics}
}

func (e *EarningsScoring) Confidence(in domsvc.ConfidenceInput) models.EarningsConfidence {
	start := time.Now()
	out := e.confidence.Score(in)
	if e.metrics != nil {
		e.metrics.RecordLatency("earnings_confidence_seconds", time.Since(start).Seconds())
	}
	return out
}

func (e *EarningsScoring) Quality(rec models.EarningsRecord) models.BeatQuality {
	start := time.Now()
	out := e.quality.Score(rec)
	if e.metrics != nil {
		e.metrics.RecordLatency("beat_quality_seconds", time.Since(start).Seconds())
	}
	return out
}

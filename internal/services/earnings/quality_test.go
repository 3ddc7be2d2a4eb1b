package earnings

import (
	"math"
	"testing"

	"MarketLens/internal/domain/models"
	"MarketLens/pkg/config"
)

func f(v float64) *float64 { return &v }

func TestAssessMetricBands(t *testing.T) {
	s := NewQualityScorer(config.Default())
	cases := []struct {
		name     string
		actual   float64
		estimate float64
		quality  models.MetricQuality
		score    float64
	}{
		{"strong beat at boundary", 2.10, 2.00, models.QualityStrongBeat, 100},
		{"beat halfway", 2.06, 2.00, models.QualityBeat, 85},
		{"inline zero", 2.00, 2.00, models.QualityInline, 50},
		{"miss halfway", 1.94, 2.00, models.QualityMiss, 15},
		{"strong miss", 1.80, 2.00, models.QualityStrongMiss, 0},
		{"negative estimate beat", -0.90, -1.00, models.QualityStrongBeat, 100},
	}
	for _, c := range cases {
		q, _, score, ok := s.AssessMetric(f(c.actual), f(c.estimate))
		if !ok {
			t.Fatalf("%s: expected data", c.name)
		}
		if q != c.quality {
			t.Fatalf("%s: quality = %s, want %s", c.name, q, c.quality)
		}
		if math.Abs(score-c.score) > 1e-9 {
			t.Fatalf("%s: score = %v, want %v", c.name, score, c.score)
		}
	}
}

func TestAssessMetricMissingData(t *testing.T) {
	s := NewQualityScorer(config.Default())
	q, pct, score, ok := s.AssessMetric(f(2.0), nil)
	if ok || q != models.QualityNoEstimate || pct != 0 || score != 50 {
		t.Fatalf("missing estimate: got %s/%v/%v/%v", q, pct, score, ok)
	}
	q, _, _, ok = s.AssessMetric(nil, f(2.0))
	if ok || q != models.QualityNoEstimate {
		t.Fatalf("missing actual: got %s/%v", q, ok)
	}
}

func TestAssessMetricZeroEstimate(t *testing.T) {
	s := NewQualityScorer(config.Default())
	cases := []struct {
		actual  float64
		quality models.MetricQuality
		score   float64
	}{
		{0.10, models.QualityStrongBeat, 100},
		{-0.10, models.QualityStrongMiss, 0},
		{0, models.QualityInline, 50},
	}
	for _, c := range cases {
		q, pct, score, ok := s.AssessMetric(f(c.actual), f(0))
		if !ok {
			t.Fatalf("expected data")
		}
		if q != c.quality || score != c.score || pct != 0 {
			t.Fatalf("actual %v: got %s/%v/%v", c.actual, q, pct, score)
		}
	}
}

func TestScoreBlendsEPSAndRevenue(t *testing.T) {
	s := NewQualityScorer(config.Default())
	got := s.Score(models.EarningsRecord{
		Symbol:          "AAPL",
		EPSActual:       f(2.20),
		EPSEstimate:     f(2.00), // +10 percent, strong beat, 100
		RevenueActual:   f(100),
		RevenueEstimate: f(100), // inline, 50
	})
	// 0.6*100 + 0.4*50 = 80.
	if math.Abs(got.OverallScore-80) > 1e-9 {
		t.Fatalf("overall = %v, want 80", got.OverallScore)
	}
	if got.Stars != 4 {
		t.Fatalf("stars = %d, want 4", got.Stars)
	}
	if got.EPSQuality != models.QualityStrongBeat || got.RevenueQuality != models.QualityInline {
		t.Fatalf("qualities = %s/%s", got.EPSQuality, got.RevenueQuality)
	}
	if math.Abs(got.EPSBeatPercent-10) > 1e-9 {
		t.Fatalf("eps beat percent = %v, want 10", got.EPSBeatPercent)
	}
	if !got.HasEPSData || !got.HasRevenueData {
		t.Fatalf("data flags = %v/%v", got.HasEPSData, got.HasRevenueData)
	}
}

func TestScoreSingleMetric(t *testing.T) {
	s := NewQualityScorer(config.Default())
	got := s.Score(models.EarningsRecord{
		Symbol:      "TSLA",
		EPSActual:   f(1.10),
		EPSEstimate: f(1.00),
	})
	if got.OverallScore != 100 {
		t.Fatalf("overall = %v, want 100", got.OverallScore)
	}
	if got.Stars != 5 {
		t.Fatalf("stars = %d, want 5", got.Stars)
	}
	if got.RevenueQuality != models.QualityNoEstimate || got.HasRevenueData {
		t.Fatalf("revenue should be no_estimate without data")
	}
}

func TestScoreNoData(t *testing.T) {
	s := NewQualityScorer(config.Default())
	got := s.Score(models.EarningsRecord{Symbol: "X"})
	if got.OverallScore != 50 {
		t.Fatalf("overall = %v, want 50", got.OverallScore)
	}
	if got.Stars != 3 {
		t.Fatalf("stars = %d, want 3", got.Stars)
	}
}

func TestGradeContinuity(t *testing.T) {
	s := NewQualityScorer(config.Default())
	cfg := config.Default().Scoring.Quality

	// Scores approaching a band edge from both sides must meet.
	_, below := s.grade(cfg.BeatPct - 1e-9)
	_, above := s.grade(cfg.BeatPct)
	if math.Abs(below-above) > 1e-6 {
		t.Fatalf("discontinuity at beat edge: %v vs %v", below, above)
	}
	_, below = s.grade(cfg.MissPct)
	_, above = s.grade(cfg.MissPct + 1e-9)
	if math.Abs(below-above) > 1e-6 {
		t.Fatalf("discontinuity at miss edge: %v vs %v", below, above)
	}
}

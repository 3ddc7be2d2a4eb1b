package earnings

import (
	"math"

	"MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/pkg/config"
)

// QualityScorer grades how good an earnings beat or miss actually was.
type QualityScorer struct {
	cfg config.QualityConfig
}

func NewQualityScorer(cfg *config.Config) *QualityScorer {
	return &QualityScorer{cfg: cfg.Scoring.Quality}
}

// Score grades EPS and Revenue independently, then blends them. A missing
// metric is neutral (50), never a penalty; 50 is also the answer when no
// estimates exist at all.
func (s *QualityScorer) Score(rec models.EarningsRecord) models.BeatQuality {
	out := models.BeatQuality{Symbol: rec.Symbol}

	epsQ, epsPct, epsScore, epsOK := s.AssessMetric(rec.EPSActual, rec.EPSEstimate)
	revQ, revPct, revScore, revOK := s.AssessMetric(rec.RevenueActual, rec.RevenueEstimate)

	out.EPSQuality, out.EPSBeatPercent, out.HasEPSData = epsQ, epsPct, epsOK
	out.RevenueQuality, out.RevenueBeatPercent, out.HasRevenueData = revQ, revPct, revOK

	switch {
	case epsOK && revOK:
		out.OverallScore = s.cfg.EPSWeight*epsScore + (1-s.cfg.EPSWeight)*revScore
	case epsOK:
		out.OverallScore = epsScore
	case revOK:
		out.OverallScore = revScore
	default:
		out.OverallScore = 50
	}
	out.Stars = s.Stars(out.OverallScore)
	return out
}

// AssessMetric grades one actual-vs-estimate pair. Returns the quality band,
// the beat percent, the 0-100 score, and whether both values were present.
func (s *QualityScorer) AssessMetric(actual, estimate *float64) (models.MetricQuality, float64, float64, bool) {
	if actual == nil || estimate == nil {
		return models.QualityNoEstimate, 0, 50, false
	}

	// A zero estimate makes beat percent undefined; grade on sign instead.
	if *estimate == 0 {
		switch {
		case *actual > 0:
			return models.QualityStrongBeat, 0, 100, true
		case *actual < 0:
			return models.QualityStrongMiss, 0, 0, true
		}
		return models.QualityInline, 0, 50, true
	}

	pct := (*actual - *estimate) / math.Abs(*estimate) * 100
	q, score := s.grade(pct)
	return q, pct, score, true
}

// grade maps beat percent through the ordered bands with linear
// interpolation inside the beat and miss bands, so a surprise halfway
// between the beat and strong-beat thresholds lands halfway through
// [70,100), and symmetrically (0,30] for misses. The inline band slopes
// 50±20 so the score is continuous at the band edges.
func (s *QualityScorer) grade(pct float64) (models.MetricQuality, float64) {
	c := s.cfg
	switch {
	case pct >= c.StrongBeatPct:
		return models.QualityStrongBeat, 100
	case pct >= c.BeatPct:
		frac := (pct - c.BeatPct) / (c.StrongBeatPct - c.BeatPct)
		return models.QualityBeat, 70 + 30*frac
	case pct > c.MissPct:
		var frac float64
		if pct >= 0 {
			frac = pct / c.BeatPct
		} else {
			frac = pct / -c.MissPct
		}
		return models.QualityInline, 50 + 20*frac
	case pct > c.StrongMissPct:
		frac := (c.MissPct - pct) / (c.MissPct - c.StrongMissPct)
		return models.QualityMiss, 30 - 30*frac
	}
	return models.QualityStrongMiss, 0
}

// Stars buckets an overall score into a 1-5 star rating.
func (s *QualityScorer) Stars(score float64) int {
	st := s.cfg.Stars
	switch {
	case score >= st.Five:
		return 5
	case score >= st.Four:
		return 4
	case score >= st.Three:
		return 3
	case score >= st.Two:
		return 2
	}
	return 1
}

var _ domsvc.QualityScorer = (*QualityScorer)(nil)

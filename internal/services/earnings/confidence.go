package earnings

import (
	"math"
	"strings"

	"MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/pkg/config"
)

// ConfidenceScorer computes a 0-100 confidence that a price move is
// earnings-driven. Each component is computed as a pure function, then the
// named components are summed and clamped once at the end; the breakdown is
// kept for explainability and never recomputed from the total.
type ConfidenceScorer struct {
	cfg config.ConfidenceConfig
}

func NewConfidenceScorer(cfg *config.Config) *ConfidenceScorer {
	return &ConfidenceScorer{cfg: cfg.Scoring.Confidence}
}

func (s *ConfidenceScorer) Score(in domsvc.ConfidenceInput) models.EarningsConfidence {
	ctx := DeriveContext(in.Earnings, in.Now, s.cfg)

	ratio, hasRatio := volumeRatio(in.Quote)
	newsCount := s.countEarningsHeadlines(in.RecentHeadlines)

	b := models.ConfidenceBreakdown{
		Temporal: s.temporal(in, ctx),
		Volume:   s.volume(ratio, hasRatio),
		News:     s.news(newsCount),
		Analyst:  s.analyst(in.AnalystActions),
		Gap:      s.gap(in.Quote),
		Negative: s.negative(ctx, ratio, hasRatio, newsCount),
	}

	conf := clamp(b.Sum(), 0, 100)
	return models.EarningsConfidence{
		Symbol:          in.Symbol,
		Confidence:      conf,
		Label:           s.Label(conf),
		IncludeInPrompt: conf >= s.cfg.IncludeFloor,
		Breakdown:       b,
		Context:         ctx,
	}
}

// temporal looks up the bonus for the day window around the earnings date.
// Outside every window the component is zero.
func (s *ConfidenceScorer) temporal(in domsvc.ConfidenceInput, ctx models.EarningsContext) float64 {
	t := s.cfg.Temporal
	switch ctx.Status {
	case models.StatusTodayBeforeOpen:
		return t.TodayBeforeOpen
	case models.StatusTodayAfterClose:
		return t.TodayAfterClose
	case models.StatusUpcoming:
		switch {
		case ctx.DaysAway == 1:
			return t.Tomorrow
		case ctx.DaysAway <= 5:
			return t.Upcoming2to5
		}
	case models.StatusRecent:
		switch {
		case ctx.DaysSince == 1:
			return t.Day1
		case ctx.DaysSince == 2:
			return t.Day2
		case ctx.DaysSince <= 5:
			return t.Day3to5
		case ctx.DaysSince <= 7:
			return t.Day6to7
		}
	}
	return 0
}

// volume awards the highest applicable tier only, never cumulative.
func (s *ConfidenceScorer) volume(ratio float64, hasRatio bool) float64 {
	if !hasRatio {
		return 0
	}
	v := s.cfg.Volume
	switch {
	case ratio >= v.ExtremeRatio:
		return v.ExtremeBonus
	case ratio >= v.HighRatio:
		return v.HighBonus
	case ratio >= v.ElevatedRatio:
		return v.ElevatedBonus
	}
	return 0
}

func (s *ConfidenceScorer) news(count int) float64 {
	n := s.cfg.News
	switch {
	case count >= n.HighCount:
		return n.HighBonus
	case count >= n.MidCount:
		return n.MidBonus
	case count >= n.LowCount:
		return n.LowBonus
	}
	return 0
}

func (s *ConfidenceScorer) analyst(actions int) float64 {
	a := s.cfg.Analyst
	switch {
	case actions >= a.HighCount:
		return a.HighBonus
	case actions >= a.MidCount:
		return a.MidBonus
	case actions >= a.LowCount:
		return a.LowBonus
	}
	return 0
}

func (s *ConfidenceScorer) gap(q models.QuoteSnapshot) float64 {
	if q.PreviousClose <= 0 || q.DayOpen <= 0 {
		return 0
	}
	g := s.cfg.Gap
	gap := math.Abs(q.DayOpen-q.PreviousClose) / q.PreviousClose
	switch {
	case gap >= g.LargeRatio:
		return g.LargeBonus
	case gap >= g.MidRatio:
		return g.MidBonus
	case gap >= g.SmallRatio:
		return g.SmallBonus
	}
	return 0
}

// negative subtracts for contradicting evidence. Each deduction is
// independent, not mutually exclusive. Deductions that assert "no volume
// spike" need an actual volume ratio; missing data is insufficient
// evidence, not evidence of quiet trading.
func (s *ConfidenceScorer) negative(ctx models.EarningsContext, ratio float64, hasRatio bool, newsCount int) float64 {
	reported := ctx.Status == models.StatusTodayBeforeOpen ||
		ctx.Status == models.StatusTodayAfterClose ||
		ctx.Status == models.StatusRecent

	n := s.cfg.Negative
	var out float64
	if reported {
		if hasRatio && ratio < n.QuietVolumeRatio {
			out -= n.QuietVolumePenalty
		}
		if newsCount == 0 {
			out -= n.NoNewsPenalty
		}
	}
	if ctx.Status == models.StatusRecent && ctx.DaysSince >= n.StaleDays &&
		hasRatio && ratio < n.StaleVolumeRatio {
		out -= n.StalePenalty
	}
	return out
}

func (s *ConfidenceScorer) countEarningsHeadlines(headlines []string) int {
	count := 0
	for _, h := range headlines {
		lower := strings.ToLower(h)
		for _, kw := range s.cfg.News.Keywords {
			if strings.Contains(lower, kw) {
				count++
				break
			}
		}
	}
	return count
}

// Label maps a confidence value to a human-readable band.
func (s *ConfidenceScorer) Label(conf float64) string {
	l := s.cfg.Labels
	switch {
	case conf >= l.VeryHigh:
		return "very_high"
	case conf >= l.High:
		return "high"
	case conf >= l.Moderate:
		return "moderate"
	case conf >= l.Low:
		return "low"
	}
	return "none"
}

func volumeRatio(q models.QuoteSnapshot) (float64, bool) {
	if q.AvgVolume <= 0 || q.Volume <= 0 {
		return 0, false
	}
	return q.Volume / q.AvgVolume, true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ domsvc.ConfidenceScorer = (*ConfidenceScorer)(nil)

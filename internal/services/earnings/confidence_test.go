package earnings

import (
	"testing"
	"time"

	"MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/pkg/config"
)

var testNow = time.Date(2024, 10, 10, 14, 0, 0, 0, time.UTC)

func TestScoreDayAfterEarnings(t *testing.T) {
	s := NewConfidenceScorer(config.Default())
	in := domsvc.ConfidenceInput{
		Symbol: "AAPL",
		Now:    testNow,
		Earnings: &models.EarningsRecord{
			Symbol: "AAPL",
			Date:   testNow.AddDate(0, 0, -1),
			Timing: models.TimingAfterClose,
		},
		Quote: models.QuoteSnapshot{
			Volume:        250,
			AvgVolume:     100,
			DayOpen:       104,
			PreviousClose: 100,
		},
		RecentHeadlines: []string{
			"AAPL earnings beat expectations",
			"Apple revenue tops estimates",
			"Guidance raised for the holiday quarter",
		},
		AnalystActions: 2,
	}

	got := s.Score(in)

	// temporal 35 + volume 18 + news 14 + analyst 7 + gap 7 = 81.
	if got.Confidence != 81 {
		t.Fatalf("confidence = %v, want 81", got.Confidence)
	}
	if got.Breakdown.Sum() != got.Confidence {
		t.Fatalf("breakdown sum %v disagrees with confidence %v", got.Breakdown.Sum(), got.Confidence)
	}
	if got.Label != "very_high" {
		t.Fatalf("label = %s, want very_high", got.Label)
	}
	if !got.IncludeInPrompt {
		t.Fatalf("expected include flag at high confidence")
	}
	if got.Context.Status != models.StatusRecent || got.Context.DaysSince != 1 {
		t.Fatalf("context = %+v", got.Context)
	}
}

func TestScoreMissingVolumeIsNeutral(t *testing.T) {
	s := NewConfidenceScorer(config.Default())
	in := domsvc.ConfidenceInput{
		Symbol: "MSFT",
		Now:    testNow,
		Earnings: &models.EarningsRecord{
			Date: testNow.AddDate(0, 0, -1),
		},
		// No volume data at all: the quiet-volume penalty must not fire
		// on absent evidence.
		Quote:           models.QuoteSnapshot{},
		RecentHeadlines: []string{"MSFT quarterly results due"},
	}

	got := s.Score(in)
	if got.Breakdown.Volume != 0 {
		t.Fatalf("volume component = %v, want 0", got.Breakdown.Volume)
	}
	if got.Breakdown.Negative != 0 {
		t.Fatalf("negative component = %v, want 0", got.Breakdown.Negative)
	}
	// temporal 35 + news 8.
	if got.Confidence != 43 {
		t.Fatalf("confidence = %v, want 43", got.Confidence)
	}
}

func TestScoreQuietVolumePenalty(t *testing.T) {
	s := NewConfidenceScorer(config.Default())
	in := domsvc.ConfidenceInput{
		Symbol: "TSLA",
		Now:    testNow,
		Earnings: &models.EarningsRecord{
			Date: testNow.AddDate(0, 0, -1),
		},
		Quote: models.QuoteSnapshot{Volume: 90, AvgVolume: 100},
	}

	got := s.Score(in)
	// temporal 35, quiet volume -15, no earnings news -10.
	if got.Breakdown.Negative != -25 {
		t.Fatalf("negative component = %v, want -25", got.Breakdown.Negative)
	}
	if got.Confidence != 10 {
		t.Fatalf("confidence = %v, want 10", got.Confidence)
	}
	if got.Label != "none" {
		t.Fatalf("label = %s, want none", got.Label)
	}
	if got.IncludeInPrompt {
		t.Fatalf("low confidence must not be included")
	}
}

func TestScoreStalePenalty(t *testing.T) {
	s := NewConfidenceScorer(config.Default())
	in := domsvc.ConfidenceInput{
		Symbol: "NVDA",
		Now:    testNow,
		Earnings: &models.EarningsRecord{
			Date: testNow.AddDate(0, 0, -6),
		},
		Quote:           models.QuoteSnapshot{Volume: 100, AvgVolume: 100},
		RecentHeadlines: []string{"NVDA earnings recap"},
	}

	got := s.Score(in)
	// temporal 8 (day 6), quiet -15, stale -10.
	if got.Breakdown.Negative != -25 {
		t.Fatalf("negative component = %v, want -25", got.Breakdown.Negative)
	}
	if got.Confidence != 0 {
		t.Fatalf("confidence = %v, want 0 after clamping", got.Confidence)
	}
}

func TestScoreNoEarningsRecord(t *testing.T) {
	s := NewConfidenceScorer(config.Default())
	got := s.Score(domsvc.ConfidenceInput{Symbol: "AMZN", Now: testNow})
	if got.Context.Status != models.StatusNone {
		t.Fatalf("status = %s, want none", got.Context.Status)
	}
	if got.Confidence != 0 {
		t.Fatalf("confidence = %v, want 0", got.Confidence)
	}
}

func TestScoreUpcomingTomorrow(t *testing.T) {
	s := NewConfidenceScorer(config.Default())
	in := domsvc.ConfidenceInput{
		Symbol:   "GOOGL",
		Now:      testNow,
		Earnings: &models.EarningsRecord{Date: testNow.AddDate(0, 0, 1)},
	}
	got := s.Score(in)
	if got.Context.Status != models.StatusUpcoming || got.Context.DaysAway != 1 {
		t.Fatalf("context = %+v", got.Context)
	}
	if got.Breakdown.Temporal != 20 {
		t.Fatalf("temporal = %v, want 20", got.Breakdown.Temporal)
	}
	// Upcoming is not "reported": no penalties apply.
	if got.Breakdown.Negative != 0 {
		t.Fatalf("negative = %v, want 0", got.Breakdown.Negative)
	}
}

func TestCountEarningsHeadlines(t *testing.T) {
	s := NewConfidenceScorer(config.Default())
	got := s.countEarningsHeadlines([]string{
		"Apple EPS tops estimates",        // keyword: eps
		"Shares rally on Q4 guidance",     // keyword: guidance
		"New iPhone color announced",      // no keyword
		"Quarterly revenue hits a record", // counted once despite two keywords
	})
	if got != 3 {
		t.Fatalf("count = %d, want 3", got)
	}
}

func TestLabelBands(t *testing.T) {
	s := NewConfidenceScorer(config.Default())
	cases := []struct {
		conf float64
		want string
	}{
		{80, "very_high"},
		{75, "very_high"},
		{60, "high"},
		{40, "moderate"},
		{20, "low"},
		{5, "none"},
	}
	for _, c := range cases {
		if got := s.Label(c.conf); got != c.want {
			t.Fatalf("Label(%v) = %s, want %s", c.conf, got, c.want)
		}
	}
}

package models

import "time"

// EarningsTiming is when the report is released relative to the session.
type EarningsTiming string

const (
	TimingBeforeOpen EarningsTiming = "beforeOpen"
	TimingAfterClose EarningsTiming = "afterClose"
	TimingUnknown    EarningsTiming = "unknown"
)

// EarningsRecord is one calendar entry. Actual/estimate pointers are nil when
// unknown; scorers must treat nil as insufficient evidence, never as zero.
type EarningsRecord struct {
	Symbol          string         `json:"symbol"`
	Date            time.Time      `json:"date"`
	Timing          EarningsTiming `json:"timing"`
	EPSActual       *float64       `json:"eps_actual,omitempty"`
	EPSEstimate     *float64       `json:"eps_estimate,omitempty"`
	RevenueActual   *float64       `json:"revenue_actual,omitempty"`
	RevenueEstimate *float64       `json:"revenue_estimate,omitempty"`
}

// EarningsStatus relates "now" to an earnings date.
type EarningsStatus string

const (
	StatusUpcoming        EarningsStatus = "upcoming"
	StatusTodayBeforeOpen EarningsStatus = "todayBeforeOpen"
	StatusTodayAfterClose EarningsStatus = "todayAfterClose"
	StatusRecent          EarningsStatus = "recent"
	StatusNone            EarningsStatus = "none"
)

// EarningsContext is the derived view of an EarningsRecord at some instant.
type EarningsContext struct {
	Status    EarningsStatus `json:"status"`
	DaysAway  int            `json:"days_away,omitempty"`
	DaysSince int            `json:"days_since,omitempty"`
}

// QuoteSnapshot is the per-symbol market state supplied by the caller.
type QuoteSnapshot struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Volume        float64 `json:"volume"`
	AvgVolume     float64 `json:"avg_volume"`
	DayOpen       float64 `json:"day_open"`
	PreviousClose float64 `json:"previous_close"`
	DayLow        float64 `json:"day_low"`
	DayHigh       float64 `json:"day_high"`
}

// ConfidenceBreakdown holds the additive components of an earnings
// confidence score. Kept for explainability; never recomputed from the total.
type ConfidenceBreakdown struct {
	Temporal float64 `json:"temporal"`
	Volume   float64 `json:"volume"`
	News     float64 `json:"news"`
	Analyst  float64 `json:"analyst"`
	Gap      float64 `json:"gap"`
	Negative float64 `json:"negative"`
}

// Sum returns the unclamped component total.
func (b ConfidenceBreakdown) Sum() float64 {
	return b.Temporal + b.Volume + b.News + b.Analyst + b.Gap + b.Negative
}

// EarningsConfidence is the scored attribution of a price move to earnings.
type EarningsConfidence struct {
	Symbol          string              `json:"symbol"`
	Confidence      float64             `json:"confidence"`
	Label           string              `json:"label"`
	IncludeInPrompt bool                `json:"include_in_prompt"`
	Breakdown       ConfidenceBreakdown `json:"breakdown"`
	Context         EarningsContext     `json:"context"`
}

// MetricQuality grades a single actual-vs-estimate comparison.
type MetricQuality string

const (
	QualityStrongBeat MetricQuality = "strong_beat"
	QualityBeat       MetricQuality = "beat"
	QualityInline     MetricQuality = "inline"
	QualityMiss       MetricQuality = "miss"
	QualityStrongMiss MetricQuality = "strong_miss"
	QualityNoEstimate MetricQuality = "no_estimate"
)

// BeatQuality is the graded outcome of one earnings report.
type BeatQuality struct {
	Symbol             string        `json:"symbol"`
	EPSQuality         MetricQuality `json:"eps_quality"`
	RevenueQuality     MetricQuality `json:"revenue_quality"`
	EPSBeatPercent     float64       `json:"eps_beat_percent"`
	RevenueBeatPercent float64       `json:"revenue_beat_percent"`
	OverallScore       float64       `json:"overall_score"`
	Stars              int           `json:"stars"`
	HasEPSData         bool          `json:"has_eps_data"`
	HasRevenueData     bool          `json:"has_revenue_data"`
}

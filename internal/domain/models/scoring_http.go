package models

import "time"

// Requests for scoring HTTP endpoints. Defined in domain for consistency and reuse.

type AttributeRequest struct {
	Articles []Article `json:"articles" validate:"required,min=1,max=2000,dive"`
	// Tickers limits the candidate universe; empty means every directory entry.
	Tickers []string `json:"tickers" validate:"max=500"`
	// Now anchors recency decay; zero means the server clock.
	Now time.Time `json:"now"`
}

type AttributeResponse struct {
	Buckets map[string][]ScoredArticle `json:"buckets"`
}

type MacroEventsRequest struct {
	Articles []Article `json:"articles" validate:"required,min=1,max=2000,dive"`
	TopN     int       `json:"top_n" default:"5" validate:"gte=1,lte=50"`
}

type MacroEventsResponse struct {
	Events  []MacroEvent `json:"events"`
	Summary []string     `json:"summary"`
}

type EarningsConfidenceRequest struct {
	Symbol          string          `json:"symbol" validate:"required"`
	Now             time.Time       `json:"now"`
	Quote           QuoteSnapshot   `json:"quote"`
	Earnings        *EarningsRecord `json:"earnings"`
	RecentHeadlines []string        `json:"recent_headlines" validate:"max=500"`
	AnalystActions  int             `json:"analyst_actions_24h" validate:"gte=0"`
}

type BeatQualityRequest struct {
	Earnings EarningsRecord `json:"earnings" validate:"required"`
}

package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Scope classifies how broad a news article is.
type Scope string

const (
	ScopeMacro   Scope = "macro"
	ScopeSector  Scope = "sector"
	ScopeCompany Scope = "company"
	ScopeOther   Scope = "other"
)

// EventType tags the kind of company event an article covers.
type EventType string

const (
	EventEarnings EventType = "earnings"
	EventGuidance EventType = "guidance"
	EventLawsuit  EventType = "lawsuit"
	EventProduct  EventType = "product"
	EventGeneral  EventType = "general"
)

// Article is a single ingested news item. Identity fields are immutable;
// attribution and ranking attach derived fields without touching them.
type Article struct {
	ID             string    `json:"id"`
	Headline       string    `json:"headline"`
	Description    string    `json:"description"`
	CanonicalURL   string    `json:"canonical_url"`
	Source         string    `json:"source"`
	PublishedAt    time.Time `json:"published_at"`
	Scope          Scope     `json:"scope"`
	EventType      EventType `json:"event_type,omitempty"`
	MacroEventType string    `json:"macro_event_type,omitempty"`

	// Derived by attribution. Confidence is the best match's confidence.
	MatchedTickers []TickerMatch `json:"matched_tickers,omitempty"`
	Confidence     float64       `json:"confidence,omitempty"`
}

// ArticleID derives a stable id from the canonical URL.
func ArticleID(canonicalURL string) string {
	sum := sha256.Sum256([]byte(canonicalURL))
	return hex.EncodeToString(sum[:8])
}

// MatchType identifies which matcher layer produced a ticker match.
type MatchType string

const (
	MatchExact     MatchType = "exact"
	MatchCompany   MatchType = "company"
	MatchExecutive MatchType = "executive"
	MatchProduct   MatchType = "product"
	MatchContext   MatchType = "context"
	MatchEntity    MatchType = "entity"
)

// TickerMatch is the outcome of scoring one article against one ticker.
type TickerMatch struct {
	Symbol       string    `json:"symbol"`
	Confidence   float64   `json:"confidence"`
	MatchType    MatchType `json:"match_type"`
	MatchedTerms []string  `json:"matched_terms,omitempty"`
	Reason       string    `json:"reason,omitempty"`

	// Gate evidence, used by the ambiguous-ticker veto.
	SlugHit         bool `json:"-"`
	HeadlineHit     bool `json:"-"`
	PrimaryNameSeen bool `json:"-"`
}

// ScoredArticle is an article filed under one ticker's bucket together with
// that ticker's match.
type ScoredArticle struct {
	Article Article     `json:"article"`
	Match   TickerMatch `json:"match"`
}

// CompanyProfile is static reference data for one ticker.
type CompanyProfile struct {
	Symbol        string   `yaml:"symbol" json:"symbol"`
	PrimaryName   string   `yaml:"primary_name" json:"primary_name"`
	Aliases       []string `yaml:"aliases" json:"aliases,omitempty"`
	Executives    []string `yaml:"executives" json:"executives,omitempty"`
	Products      []string `yaml:"products" json:"products,omitempty"`
	ContextWords  []string `yaml:"context_words" json:"context_words,omitempty"`
	NegativeWords []string `yaml:"negative_words" json:"negative_words,omitempty"`
	// ClearlyNamed marks ambiguous tickers whose company name is distinctive
	// enough to accept on a name mention alone.
	ClearlyNamed bool `yaml:"clearly_named" json:"clearly_named,omitempty"`
}

// MacroEvent is a cluster of macro-scoped articles of one event type.
type MacroEvent struct {
	Type        string    `json:"type"`
	Headlines   []string  `json:"headlines"`
	Sources     []string  `json:"sources"`
	Earliest    time.Time `json:"earliest_published_at"`
	ArticleIDs  []string  `json:"article_ids"`
	RelatedSeen int       `json:"related_seen"` // near-duplicate headlines folded in
}

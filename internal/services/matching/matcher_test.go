package matching

import (
	"testing"

	"MarketLens/internal/domain/models"
	"MarketLens/internal/services/directory"
	"MarketLens/pkg/config"
)

func newTestMatcher(t *testing.T) *Matcher {
	t.Helper()
	dir, err := directory.New([]models.CompanyProfile{
		{
			Symbol:        "AAPL",
			PrimaryName:   "Apple Inc.",
			Aliases:       []string{"Apple"},
			Executives:    []string{"Tim Cook"},
			NegativeWords: []string{"fruit", "orchard"},
		},
		{
			Symbol:       "MSFT",
			PrimaryName:  "Microsoft Corporation",
			Aliases:      []string{"Microsoft"},
			ContextWords: []string{"cloud"},
		},
		{
			Symbol:      "F",
			PrimaryName: "Ford Motor Company",
			Aliases:     []string{"Ford Motor"},
		},
		{
			Symbol:      "ALL",
			PrimaryName: "Allstate Corporation",
			Aliases:     []string{"Allstate"},
		},
		{
			Symbol:       "T",
			PrimaryName:  "AT&T Inc.",
			Aliases:      []string{"AT&T"},
			ClearlyNamed: true,
		},
	})
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	return NewMatcher(config.Default(), dir)
}

func TestMatchExactHeadlineBeatsSlug(t *testing.T) {
	m := newTestMatcher(t)
	a := models.Article{
		ID:           "a1",
		Headline:     "Apple (AAPL) beats expectations",
		CanonicalURL: "https://news.example.com/tech/apple-aapl-earnings",
	}
	got, ok := m.Match(a, "AAPL")
	if !ok {
		t.Fatalf("expected a match")
	}
	if got.MatchType != models.MatchExact {
		t.Fatalf("match type = %s, want exact", got.MatchType)
	}
	// Headline ticker mention outranks the URL slug, which would only
	// have scored 80.
	if got.Confidence != 100 {
		t.Fatalf("confidence = %v, want 100", got.Confidence)
	}
}

func TestMatchBareCommonWordDoesNotFire(t *testing.T) {
	m := newTestMatcher(t)
	a := models.Article{ID: "a2", Headline: "Ford announces new truck lineup"}
	if _, ok := m.Match(a, "F"); ok {
		t.Fatalf("bare word must not match an ambiguous single-letter ticker")
	}
}

func TestMatchSlugCompanyName(t *testing.T) {
	m := newTestMatcher(t)
	a := models.Article{
		ID:           "a3",
		Headline:     "F-150 sales jump in Q3",
		CanonicalURL: "https://news.example.com/autos/ford-f150-sales-jump",
	}
	got, ok := m.Match(a, "F")
	if !ok {
		t.Fatalf("expected slug to attribute the article")
	}
	if got.MatchType != models.MatchCompany {
		t.Fatalf("match type = %s, want company", got.MatchType)
	}
	if got.Confidence != 80 {
		t.Fatalf("confidence = %v, want 80", got.Confidence)
	}
}

func TestMatchAmbiguousAliasInBodyVetoed(t *testing.T) {
	m := newTestMatcher(t)
	a := models.Article{
		ID:          "a4",
		Headline:    "Insurer posts record quarter",
		Description: "Allstate reported strong premium growth.",
	}
	// Alias in the body scores 70: no slug, no headline evidence, and 70
	// is below the ambiguous floor.
	if _, ok := m.Match(a, "ALL"); ok {
		t.Fatalf("expected the ambiguous gate to veto")
	}
}

func TestMatchClearlyNamedAcceptsPrimaryName(t *testing.T) {
	m := newTestMatcher(t)
	a := models.Article{
		ID:          "a5",
		Headline:    "Telecom capex update",
		Description: "AT&T Inc. expands its fiber footprint.",
	}
	got, ok := m.Match(a, "T")
	if !ok {
		t.Fatalf("expected clearly named company to pass on a name mention")
	}
	if got.Confidence != 85 {
		t.Fatalf("confidence = %v, want 85", got.Confidence)
	}
}

func TestMatchUnknownSymbol(t *testing.T) {
	m := newTestMatcher(t)
	a := models.Article{ID: "a6", Headline: "Apple (AAPL) beats expectations"}
	if _, ok := m.Match(a, "ZZZZ"); ok {
		t.Fatalf("unknown symbol must not match")
	}
}

func TestMatchExecutiveLayer(t *testing.T) {
	m := newTestMatcher(t)
	a := models.Article{
		ID:          "a7",
		Headline:    "Supply chain shifts continue",
		Description: "Tim Cook discussed manufacturing plans.",
	}
	got, ok := m.Match(a, "AAPL")
	if !ok {
		t.Fatalf("expected executive mention to match")
	}
	if got.MatchType != models.MatchExecutive {
		t.Fatalf("match type = %s, want executive", got.MatchType)
	}
	if got.Confidence != 60 {
		t.Fatalf("confidence = %v, want 60", got.Confidence)
	}
}

func TestMatchNegativeWordsPushBelowFloor(t *testing.T) {
	m := newTestMatcher(t)
	a := models.Article{
		ID:       "a8",
		Headline: "Tim Cook visits an orchard to pick fruit",
	}
	// Executive in headline is 70; two negative words subtract 40,
	// landing below the acceptance floor.
	if _, ok := m.Match(a, "AAPL"); ok {
		t.Fatalf("expected negative context to reject the match")
	}
}

func TestMatchContextAndSourceBonusesClamp(t *testing.T) {
	m := newTestMatcher(t)
	a := models.Article{
		ID:       "a9",
		Headline: "Microsoft Corporation lifts cloud forecast",
		Source:   "Reuters",
	}
	got, ok := m.Match(a, "MSFT")
	if !ok {
		t.Fatalf("expected a match")
	}
	// 85 name + 10 headline + 5 context + 5 source clamps at 100.
	if got.Confidence != 100 {
		t.Fatalf("confidence = %v, want 100", got.Confidence)
	}
	found := false
	for _, term := range got.MatchedTerms {
		if term == "cloud" {
			found = true
		}
	}
	if !found {
		t.Fatalf("context word missing from matched terms: %v", got.MatchedTerms)
	}
}

func TestMatchNameInBodyOnly(t *testing.T) {
	m := newTestMatcher(t)
	a := models.Article{
		ID:          "a10",
		Headline:    "Big tech roundup",
		Description: "Microsoft Corporation reported steady growth.",
	}
	got, ok := m.Match(a, "MSFT")
	if !ok {
		t.Fatalf("expected a match")
	}
	if got.Confidence != 85 {
		t.Fatalf("body-only name should skip the headline bonus, got %v", got.Confidence)
	}
}

package matching

import (
	"testing"
	"time"

	"MarketLens/internal/domain/models"
	"MarketLens/internal/services/directory"
	"MarketLens/pkg/config"
)

func newTestAttributor(t *testing.T) *Attributor {
	t.Helper()
	dir, err := directory.New([]models.CompanyProfile{
		{Symbol: "AAPL", PrimaryName: "Apple Inc.", Aliases: []string{"Apple"}},
		{Symbol: "MSFT", PrimaryName: "Microsoft Corporation", Aliases: []string{"Microsoft"}},
	})
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	return NewAttributor(NewMatcher(config.Default(), dir), dir)
}

func TestAttributeBuckets(t *testing.T) {
	at := newTestAttributor(t)
	t0 := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)
	arts := []models.Article{
		{ID: "a1", Headline: "Apple (AAPL) beats expectations", PublishedAt: t0},
		{ID: "a2", Headline: "Microsoft Corporation lifts guidance", PublishedAt: t0.Add(time.Hour)},
		{ID: "a3", Headline: "Apple Inc. and Microsoft Corporation announce partnership", PublishedAt: t0},
		{ID: "a4", Headline: "Oil prices slide", PublishedAt: t0},
	}

	buckets := at.Attribute(arts, nil)

	aapl := buckets["AAPL"]
	if len(aapl) != 2 {
		t.Fatalf("AAPL bucket size = %d, want 2", len(aapl))
	}
	// Exact ticker mention (100) outranks the name mention (95).
	if aapl[0].Article.ID != "a1" || aapl[1].Article.ID != "a3" {
		t.Fatalf("AAPL order = %s, %s", aapl[0].Article.ID, aapl[1].Article.ID)
	}

	msft := buckets["MSFT"]
	if len(msft) != 2 {
		t.Fatalf("MSFT bucket size = %d, want 2", len(msft))
	}
	// Equal confidence falls back to the newer article.
	if msft[0].Article.ID != "a2" {
		t.Fatalf("expected newer article first, got %s", msft[0].Article.ID)
	}

	if len(buckets) != 2 {
		t.Fatalf("unmatched article must land in zero buckets, got %d buckets", len(buckets))
	}
}

func TestAttributeMultiTickerArticle(t *testing.T) {
	at := newTestAttributor(t)
	arts := []models.Article{
		{ID: "a3", Headline: "Apple Inc. and Microsoft Corporation announce partnership"},
	}
	buckets := at.Attribute(arts, nil)

	sa := buckets["AAPL"][0]
	if len(sa.Article.MatchedTickers) != 2 {
		t.Fatalf("matched tickers = %d, want 2", len(sa.Article.MatchedTickers))
	}
	// Equal confidences order alphabetically.
	if sa.Article.MatchedTickers[0].Symbol != "AAPL" {
		t.Fatalf("first matched ticker = %s", sa.Article.MatchedTickers[0].Symbol)
	}
	if sa.Article.Confidence != sa.Article.MatchedTickers[0].Confidence {
		t.Fatalf("article confidence must be the best match's confidence")
	}
}

func TestAttributeTickerFilter(t *testing.T) {
	at := newTestAttributor(t)
	arts := []models.Article{
		{ID: "a1", Headline: "Apple (AAPL) beats expectations"},
		{ID: "a2", Headline: "Microsoft Corporation lifts guidance"},
	}
	buckets := at.Attribute(arts, []string{"AAPL"})
	if len(buckets) != 1 {
		t.Fatalf("expected only the requested ticker, got %d buckets", len(buckets))
	}
	if _, ok := buckets["AAPL"]; !ok {
		t.Fatalf("missing AAPL bucket")
	}
}

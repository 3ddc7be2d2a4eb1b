package macro

import (
	"strings"
	"testing"
	"time"

	"MarketLens/internal/domain/models"
	"MarketLens/pkg/config"
)

func fedBatch(t0 time.Time) []models.Article {
	return []models.Article{
		{
			ID: "a1", Scope: models.ScopeMacro, MacroEventType: "fed",
			Headline: "Fed holds rates steady",
			Source:   "Reuters", PublishedAt: t0,
		},
		{
			ID: "a2", Scope: models.ScopeMacro, MacroEventType: "fed",
			Headline: "Federal Reserve holds interest rates steady, surprising markets",
			Source:   "Bloomberg", PublishedAt: t0.Add(-time.Hour),
		},
		{
			ID: "a3", Scope: models.ScopeMacro, MacroEventType: "fed",
			Headline: "Treasury yields climb after Fed decision",
			Source:   "reuters", PublishedAt: t0.Add(time.Hour),
		},
	}
}

func TestGroupMergesNearDuplicates(t *testing.T) {
	g := NewGrouper(config.Default())
	t0 := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)

	events := g.Group(fedBatch(t0))
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	ev := events[0]
	if ev.Type != "fed" {
		t.Fatalf("type = %s", ev.Type)
	}
	// Near-duplicate headline folds in as a related article.
	if len(ev.Headlines) != 2 {
		t.Fatalf("headlines = %d, want 2", len(ev.Headlines))
	}
	if ev.RelatedSeen != 1 {
		t.Fatalf("related = %d, want 1", ev.RelatedSeen)
	}
	if len(ev.ArticleIDs) != 3 {
		t.Fatalf("article ids = %d, want 3", len(ev.ArticleIDs))
	}
	// Source names dedupe case-insensitively.
	if len(ev.Sources) != 2 {
		t.Fatalf("sources = %v, want 2 entries", ev.Sources)
	}
	if !ev.Earliest.Equal(t0.Add(-time.Hour)) {
		t.Fatalf("earliest = %v", ev.Earliest)
	}
}

func TestGroupSkipsNonMacro(t *testing.T) {
	g := NewGrouper(config.Default())
	arts := []models.Article{
		{ID: "a1", Scope: models.ScopeCompany, MacroEventType: "fed", Headline: "x"},
		{ID: "a2", Scope: models.ScopeMacro, Headline: "no event type"},
	}
	if events := g.Group(arts); len(events) != 0 {
		t.Fatalf("expected no events, got %d", len(events))
	}
}

func TestGroupOrdersByRecency(t *testing.T) {
	g := NewGrouper(config.Default())
	t0 := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)
	arts := []models.Article{
		{ID: "a1", Scope: models.ScopeMacro, MacroEventType: "cpi", Headline: "CPI cools to 2.9 percent", PublishedAt: t0.Add(-3 * time.Hour)},
		{ID: "a2", Scope: models.ScopeMacro, MacroEventType: "fed", Headline: "Fed holds rates steady", PublishedAt: t0},
	}
	events := g.Group(arts)
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	if events[0].Type != "fed" || events[1].Type != "cpi" {
		t.Fatalf("order = %s, %s", events[0].Type, events[1].Type)
	}
}

func TestSummarize(t *testing.T) {
	g := NewGrouper(config.Default())
	t0 := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)

	events := g.Group(fedBatch(t0))
	lines := g.Summarize(events, 5)
	if len(lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(lines))
	}
	line := lines[0]
	if !strings.HasPrefix(line, "[fed]") {
		t.Fatalf("missing type tag: %q", line)
	}
	if !strings.Contains(line, "(+1 related)") {
		t.Fatalf("missing related count: %q", line)
	}
	if !strings.Contains(line, "Reuters") || !strings.Contains(line, "Bloomberg") {
		t.Fatalf("missing sources: %q", line)
	}
}

func TestSummarizeCapsHeadlines(t *testing.T) {
	g := NewGrouper(config.Default())
	t0 := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)
	arts := []models.Article{
		{ID: "a1", Scope: models.ScopeMacro, MacroEventType: "fed", Headline: "Powell signals patience on cuts", PublishedAt: t0},
		{ID: "a2", Scope: models.ScopeMacro, MacroEventType: "fed", Headline: "Markets reprice the terminal rate", PublishedAt: t0},
		{ID: "a3", Scope: models.ScopeMacro, MacroEventType: "fed", Headline: "Dot plot shows a wide spread", PublishedAt: t0},
		{ID: "a4", Scope: models.ScopeMacro, MacroEventType: "fed", Headline: "Balance sheet runoff slows further", PublishedAt: t0},
	}
	events := g.Group(arts)
	lines := g.Summarize(events, 1)
	if len(lines) != 1 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.Contains(lines[0], "(+1 related)") {
		t.Fatalf("overflow headline not counted as related: %q", lines[0])
	}
	if strings.Count(lines[0], "|") != 2 {
		t.Fatalf("expected 3 shown headlines: %q", lines[0])
	}
}

package newsrank

import (
	"testing"

	"MarketLens/internal/domain/models"
)

func TestDedupeByURL(t *testing.T) {
	d := NewDeduplicator()
	arts := []models.Article{
		{ID: "a1", Headline: "Apple beats", CanonicalURL: "https://x.com/1"},
		{ID: "a2", Headline: "Apple beats expectations", CanonicalURL: "https://x.com/1"},
		{ID: "a3", Headline: "Something else", CanonicalURL: "https://x.com/2"},
	}
	out := d.Dedupe(arts)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	if out[0].ID != "a1" || out[1].ID != "a3" {
		t.Fatalf("unexpected survivors: %s, %s", out[0].ID, out[1].ID)
	}
}

func TestDedupeByTitleKeepsLongerDescription(t *testing.T) {
	d := NewDeduplicator()
	arts := []models.Article{
		{ID: "a1", Headline: "Fed Raises Rates", Description: "short", CanonicalURL: "https://x.com/1"},
		{ID: "a2", Headline: "fed raises rates!", Description: "a much longer description", CanonicalURL: "https://y.com/1"},
	}
	out := d.Dedupe(arts)
	if len(out) != 1 {
		t.Fatalf("len = %d, want 1", len(out))
	}
	if out[0].ID != "a2" {
		t.Fatalf("expected the richer duplicate to win, got %s", out[0].ID)
	}
}

func TestDedupeTitleWinnerKeepsPosition(t *testing.T) {
	d := NewDeduplicator()
	arts := []models.Article{
		{ID: "a1", Headline: "Fed Raises Rates", Description: "first and short", CanonicalURL: "https://x.com/1"},
		{ID: "a2", Headline: "Oil slides", CanonicalURL: "https://x.com/2"},
		{ID: "a3", Headline: "fed raises rates", Description: "a much longer replacement text", CanonicalURL: "https://x.com/3"},
	}
	out := d.Dedupe(arts)
	if len(out) != 2 {
		t.Fatalf("len = %d, want 2", len(out))
	}
	// The replacement takes the slot the first occurrence held.
	if out[0].ID != "a3" || out[1].ID != "a2" {
		t.Fatalf("unexpected order: %s, %s", out[0].ID, out[1].ID)
	}
}

func TestDedupeEmptyURLNeverCollides(t *testing.T) {
	d := NewDeduplicator()
	arts := []models.Article{
		{ID: "a1", Headline: "First story"},
		{ID: "a2", Headline: "Second story"},
	}
	out := d.Dedupe(arts)
	if len(out) != 2 {
		t.Fatalf("articles without URLs collided: len = %d", len(out))
	}
}

func TestDedupeIdempotent(t *testing.T) {
	d := NewDeduplicator()
	arts := []models.Article{
		{ID: "a1", Headline: "Apple beats", CanonicalURL: "https://x.com/1"},
		{ID: "a2", Headline: "apple BEATS", CanonicalURL: "https://x.com/2"},
		{ID: "a3", Headline: "Oil slides", CanonicalURL: "https://x.com/3"},
	}
	once := d.Dedupe(arts)
	twice := d.Dedupe(once)
	if len(once) != len(twice) {
		t.Fatalf("dedupe is not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].ID != twice[i].ID {
			t.Fatalf("order changed on second pass at %d", i)
		}
	}
}

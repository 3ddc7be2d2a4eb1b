package newsrank

import (
	"math"
	"testing"
	"time"

	"MarketLens/internal/domain/models"
	"MarketLens/pkg/config"
)

func newTestRanker() *Ranker {
	return NewRanker(config.Default())
}

func TestScoreRecencyDecay(t *testing.T) {
	r := newTestRanker()
	now := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)

	fresh := models.Article{Confidence: 80, PublishedAt: now.Add(-1 * time.Hour)}
	stale := models.Article{Confidence: 80, PublishedAt: now.Add(-10 * time.Hour)}

	if r.Score(fresh, now) <= r.Score(stale, now) {
		t.Fatalf("fresher article must outscore a stale one")
	}
	if got := r.Score(fresh, now); got != 79 {
		t.Fatalf("score = %v, want 79", got)
	}
}

func TestScoreRecencyCap(t *testing.T) {
	r := newTestRanker()
	now := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)

	old := models.Article{Confidence: 80, PublishedAt: now.Add(-48 * time.Hour)}
	older := models.Article{Confidence: 80, PublishedAt: now.Add(-96 * time.Hour)}

	if r.Score(old, now) != r.Score(older, now) {
		t.Fatalf("decay must stop at the cap")
	}
	if got := r.Score(old, now); got != 56 {
		t.Fatalf("score = %v, want 56", got)
	}
}

func TestScoreEventAndSourceBoosts(t *testing.T) {
	r := newTestRanker()
	now := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)

	plain := models.Article{Confidence: 60, PublishedAt: now}
	earnings := models.Article{Confidence: 60, PublishedAt: now, EventType: models.EventEarnings}
	top := models.Article{Confidence: 60, PublishedAt: now, Source: "Bloomberg"}

	if got := r.Score(plain, now); got != 60 {
		t.Fatalf("plain score = %v, want 60", got)
	}
	if got := r.Score(earnings, now); got != 90 {
		t.Fatalf("earnings score = %v, want 90", got)
	}
	if got := r.Score(top, now); math.Abs(got-66) > 1e-9 {
		t.Fatalf("top-source score = %v, want 66", got)
	}
}

func TestScoreClampAndDefault(t *testing.T) {
	r := newTestRanker()
	now := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)

	hot := models.Article{Confidence: 100, PublishedAt: now, EventType: models.EventEarnings}
	if got := r.Score(hot, now); got != 100 {
		t.Fatalf("score must clamp at 100, got %v", got)
	}

	unscored := models.Article{PublishedAt: now}
	if got := r.Score(unscored, now); got != 50 {
		t.Fatalf("zero confidence must fall back to the default, got %v", got)
	}

	future := models.Article{Confidence: 70, PublishedAt: now.Add(time.Hour)}
	if got := r.Score(future, now); got != 70 {
		t.Fatalf("future timestamps must not add score, got %v", got)
	}
}

func TestRankDeterministic(t *testing.T) {
	r := newTestRanker()
	now := time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC)
	arts := []models.Article{
		{ID: "b", Confidence: 70, PublishedAt: now.Add(-2 * time.Hour)},
		{ID: "a", Confidence: 70, PublishedAt: now.Add(-2 * time.Hour)},
		{ID: "c", Confidence: 90, PublishedAt: now.Add(-2 * time.Hour)},
	}

	got := r.Rank(arts, now)
	if got[0].ID != "c" {
		t.Fatalf("highest score must rank first, got %s", got[0].ID)
	}
	// Equal score and timestamp falls back to id order.
	if got[1].ID != "a" || got[2].ID != "b" {
		t.Fatalf("tie break order = %s, %s", got[1].ID, got[2].ID)
	}

	// Input order must be untouched.
	if arts[0].ID != "b" {
		t.Fatalf("Rank mutated its input")
	}
}

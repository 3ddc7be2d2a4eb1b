package newsrank

import (
	"sort"
	"strings"
	"time"

	"MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/pkg/config"
)

// Ranker orders articles by a composite of confidence, recency decay,
// event type, and source quality. Recency is subtracted before the
// multiplicative boosts so a boost amplifies an already-decayed score
// instead of being diluted by it.
type Ranker struct {
	cfg        config.RankingConfig
	topSources map[string]struct{}
}

func NewRanker(cfg *config.Config) *Ranker {
	r := &Ranker{
		cfg:        cfg.Scoring.Ranking,
		topSources: make(map[string]struct{}, len(cfg.Scoring.Ranking.TopSources)),
	}
	for _, s := range cfg.Scoring.Ranking.TopSources {
		r.topSources[strings.ToLower(s)] = struct{}{}
	}
	return r
}

// Score computes one article's composite score at the given instant.
func (r *Ranker) Score(a models.Article, now time.Time) float64 {
	score := a.Confidence
	if score == 0 {
		score = r.cfg.DefaultConfidence
	}

	hours := now.Sub(a.PublishedAt).Hours()
	if hours < 0 {
		hours = 0
	}
	if hours > r.cfg.RecencyCapHours {
		hours = r.cfg.RecencyCapHours
	}
	score -= hours

	if mult, ok := r.cfg.EventMultipliers[string(a.EventType)]; ok {
		score *= mult
	}
	if _, top := r.topSources[strings.ToLower(a.Source)]; top {
		score *= r.cfg.TopSourceMultiplier
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Rank returns a new slice sorted descending by composite score. The caller
// supplies now so identical inputs always produce identical output.
func (r *Ranker) Rank(articles []models.Article, now time.Time) []models.Article {
	out := make([]models.Article, len(articles))
	copy(out, articles)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := r.Score(out[i], now), r.Score(out[j], now)
		if si != sj {
			return si > sj
		}
		if !out[i].PublishedAt.Equal(out[j].PublishedAt) {
			return out[i].PublishedAt.After(out[j].PublishedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

var _ domsvc.Ranker = (*Ranker)(nil)

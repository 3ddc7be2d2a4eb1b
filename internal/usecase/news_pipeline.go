package usecase

import (
	"sort"
	"time"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	domsvc "MarketLens/internal/domain/service"
)

// NewsPipeline runs the attribution flow: dedupe the batch, attribute each
// article across the ticker universe, then rank every per-ticker bucket.
// Pure over its inputs; metrics are a side channel.
type NewsPipeline struct {
	dedupe     domsvc.Deduplicator
	attributor domsvc.Attributor
	ranker     domsvc.Ranker
	macro      domsvc.MacroGrouper
	metrics    domrepo.Metrics
}

func NewNewsPipeline(
	dedupe domsvc.Deduplicator,
	attributor domsvc.Attributor,
	ranker domsvc.Ranker,
	macro domsvc.MacroGrouper,
	metrics domrepo.Metrics,
) *NewsPipeline {
	return &NewsPipeline{dedupe: dedupe, attributor: attributor, ranker: ranker, macro: macro, metrics: metrics}
}

// ScoreBatch produces ranked per-ticker article buckets. An empty ticker
// list means the whole directory universe. now anchors recency decay so
// identical inputs give identical output.
func (p *NewsPipeline) ScoreBatch(articles []models.Article, tickers []string, now time.Time) map[string][]models.ScoredArticle {
	start := time.Now()

	deduped := p.dedupe.Dedupe(articles)
	buckets := p.attributor.Attribute(deduped, tickers)

	for sym, bucket := range buckets {
		buckets[sym] = p.rankBucket(bucket, now)
	}

	if p.metrics != nil {
		p.metrics.RecordArticlesScored(len(deduped))
		for sym, bucket := range buckets {
			for _, sa := range bucket {
				p.metrics.RecordMatch(sym, string(sa.Match.MatchType))
			}
		}
		p.metrics.RecordLatency("score_batch_seconds", time.Since(start).Seconds())
	}
	return buckets
}

// rankBucket orders one ticker's articles using that ticker's match
// confidence as the ranking base. The slice is sorted in place by entry,
// never rejoined by id, so articles that share an id (URL-less inputs get
// the same derived fallback) still keep their own content.
func (p *NewsPipeline) rankBucket(bucket []models.ScoredArticle, now time.Time) []models.ScoredArticle {
	out := make([]models.ScoredArticle, len(bucket))
	copy(out, bucket)
	score := func(sa models.ScoredArticle) float64 {
		a := sa.Article
		a.Confidence = sa.Match.Confidence
		return p.ranker.Score(a, now)
	}
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := score(out[i]), score(out[j])
		if si != sj {
			return si > sj
		}
		if !out[i].Article.PublishedAt.Equal(out[j].Article.PublishedAt) {
			return out[i].Article.PublishedAt.After(out[j].Article.PublishedAt)
		}
		return out[i].Article.ID < out[j].Article.ID
	})
	return out
}

// MacroEvents clusters the batch's macro articles and renders summary lines.
func (p *NewsPipeline) MacroEvents(articles []models.Article, topN int) ([]models.MacroEvent, []string) {
	start := time.Now()
	events := p.macro.Group(articles)
	summary := p.macro.Summarize(events, topN)
	if p.metrics != nil {
		p.metrics.RecordLatency("macro_group_seconds", time.Since(start).Seconds())
	}
	return events, summary
}

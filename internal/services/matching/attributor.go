package matching

import (
	"sort"

	"MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/internal/services/directory"
)

// Attributor applies the matcher across the ticker universe for a batch of
// articles. Pure over its inputs: no article is dropped globally, it just
// lands in zero buckets when nothing matches.
type Attributor struct {
	matcher domsvc.TickerMatcher
	dir     *directory.Directory
}

func NewAttributor(matcher domsvc.TickerMatcher, dir *directory.Directory) *Attributor {
	return &Attributor{matcher: matcher, dir: dir}
}

// Attribute files each article under every ticker it matches. An empty
// ticker list means the whole directory. Buckets come back sorted by
// (confidence desc, publishedAt desc, id asc).
func (at *Attributor) Attribute(articles []models.Article, tickers []string) map[string][]models.ScoredArticle {
	if len(tickers) == 0 {
		tickers = at.dir.Symbols()
	}

	buckets := make(map[string][]models.ScoredArticle)
	for _, art := range articles {
		matches := make([]models.TickerMatch, 0, 2)
		for _, sym := range tickers {
			if m, ok := at.matcher.Match(art, sym); ok {
				matches = append(matches, m)
			}
		}
		if len(matches) == 0 {
			continue
		}
		sort.Slice(matches, func(i, j int) bool {
			if matches[i].Confidence != matches[j].Confidence {
				return matches[i].Confidence > matches[j].Confidence
			}
			return matches[i].Symbol < matches[j].Symbol
		})

		scored := art // copy; identity fields stay untouched
		scored.MatchedTickers = matches
		scored.Confidence = matches[0].Confidence
		for _, m := range matches {
			buckets[m.Symbol] = append(buckets[m.Symbol], models.ScoredArticle{Article: scored, Match: m})
		}
	}

	for sym := range buckets {
		b := buckets[sym]
		sort.Slice(b, func(i, j int) bool {
			if b[i].Match.Confidence != b[j].Match.Confidence {
				return b[i].Match.Confidence > b[j].Match.Confidence
			}
			if !b[i].Article.PublishedAt.Equal(b[j].Article.PublishedAt) {
				return b[i].Article.PublishedAt.After(b[j].Article.PublishedAt)
			}
			return b[i].Article.ID < b[j].Article.ID
		})
	}
	return buckets
}

var _ domsvc.Attributor = (*Attributor)(nil)

package newsrank

import (
	"MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/pkg/util"
)

// Deduplicator collapses duplicate articles on two levels: exact canonical
// URL (first occurrence wins) and normalized title (the occurrence with the
// longer description wins, regardless of arrival order).
type Deduplicator struct{}

func NewDeduplicator() *Deduplicator { return &Deduplicator{} }

// Dedupe is idempotent: applying it to its own output changes nothing.
func (d *Deduplicator) Dedupe(articles []models.Article) []models.Article {
	out := make([]models.Article, 0, len(articles))
	seenURL := make(map[string]struct{}, len(articles))
	byTitle := make(map[string]int, len(articles)) // normalized title -> index in out

	for _, a := range articles {
		// Articles without a canonical URL never collide on level one.
		if a.CanonicalURL != "" {
			if _, dup := seenURL[a.CanonicalURL]; dup {
				continue
			}
			seenURL[a.CanonicalURL] = struct{}{}
		}

		title := util.NormalizeText(a.Headline)
		if idx, dup := byTitle[title]; dup && title != "" {
			// Same story from another feed: keep whichever carries more
			// information, in the position already held.
			if len(a.Description) > len(out[idx].Description) {
				out[idx] = a
			}
			continue
		}
		byTitle[title] = len(out)
		out = append(out, a)
	}
	return out
}

var _ domsvc.Deduplicator = (*Deduplicator)(nil)

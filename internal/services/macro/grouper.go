package macro

import (
	"fmt"
	"sort"
	"strings"

	"MarketLens/internal/domain/models"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/pkg/config"
	"MarketLens/pkg/util"
)

// Grouper clusters macro-scoped articles into one event per macro event
// type per call; the caller chooses the time window by choosing the batch.
type Grouper struct {
	cfg config.MacroConfig
}

func NewGrouper(cfg *config.Config) *Grouper {
	return &Grouper{cfg: cfg.Scoring.Macro}
}

// Group merges macro articles into events. Every article of a type joins
// that type's event (ids appended, sources deduped, earliest timestamp
// wins); the headline list only gains headlines that are not
// near-duplicates of ones already held. Articles without a macro scope or
// event type are skipped, not failed.
func (g *Grouper) Group(articles []models.Article) []models.MacroEvent {
	events := make(map[string]*models.MacroEvent)
	order := make([]string, 0, 4)

	for _, a := range articles {
		if a.Scope != models.ScopeMacro || a.MacroEventType == "" {
			continue
		}
		ev, ok := events[a.MacroEventType]
		if !ok {
			ev = &models.MacroEvent{Type: a.MacroEventType, Earliest: a.PublishedAt}
			events[a.MacroEventType] = ev
			order = append(order, a.MacroEventType)
		}

		if g.isNovel(ev.Headlines, a.Headline) {
			ev.Headlines = append(ev.Headlines, a.Headline)
		} else {
			ev.RelatedSeen++
		}
		ev.ArticleIDs = append(ev.ArticleIDs, a.ID)
		if !containsSource(ev.Sources, a.Source) {
			ev.Sources = append(ev.Sources, a.Source)
		}
		if a.PublishedAt.Before(ev.Earliest) {
			ev.Earliest = a.PublishedAt
		}
	}

	out := make([]models.MacroEvent, 0, len(order))
	for _, t := range order {
		out = append(out, *events[t])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Earliest.Equal(out[j].Earliest) {
			return out[i].Earliest.After(out[j].Earliest)
		}
		return out[i].Type < out[j].Type
	})
	return out
}

// isNovel reports whether a headline is not a near-duplicate of any already
// held: near-duplicate means exact normalized equality or word-set overlap
// above the configured threshold.
func (g *Grouper) isNovel(held []string, headline string) bool {
	norm := util.NormalizeText(headline)
	for _, h := range held {
		if util.NormalizeText(h) == norm {
			return false
		}
		if util.OverlapSimilarity(h, headline) > g.cfg.SimilarityThreshold {
			return false
		}
	}
	return true
}

// Summarize renders the top-N events as short human-readable lines, capping
// the headlines shown and noting how many related articles were folded in.
func (g *Grouper) Summarize(events []models.MacroEvent, topN int) []string {
	if topN <= 0 || topN > len(events) {
		topN = len(events)
	}
	lines := make([]string, 0, topN)
	for _, ev := range events[:topN] {
		shown := ev.Headlines
		omitted := ev.RelatedSeen
		if len(shown) > g.cfg.MaxHeadlines {
			omitted += len(shown) - g.cfg.MaxHeadlines
			shown = shown[:g.cfg.MaxHeadlines]
		}
		line := fmt.Sprintf("[%s] %s", ev.Type, strings.Join(shown, " | "))
		if omitted > 0 {
			line += fmt.Sprintf(" (+%d related)", omitted)
		}
		if len(ev.Sources) > 0 {
			line += " - " + strings.Join(ev.Sources, ", ")
		}
		lines = append(lines, line)
	}
	return lines
}

func containsSource(ss []string, s string) bool {
	for _, v := range ss {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

var _ domsvc.MacroGrouper = (*Grouper)(nil)

package matching

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/internal/services/directory"
	"MarketLens/pkg/config"
	applogger "MarketLens/pkg/logger"
	"MarketLens/pkg/util"
)

// Matcher scores one article against one ticker with layered rules. Layers
// are mutually exclusive: the first one that fires decides the match type
// and base confidence. All patterns are precompiled at construction; the
// matcher is read-only afterwards and safe for concurrent use.
type Matcher struct {
	cfg       config.MatcherConfig
	dir       *directory.Directory
	patterns  map[string]*symbolPatterns
	ambiguous map[string]struct{}
	slugStop  map[string]struct{}
	log       *applogger.Logger
	metrics   domrepo.Metrics
}

type symbolPatterns struct {
	profile models.CompanyProfile
	exact   *regexp.Regexp // ticker marker patterns ($T, (T), T:, exchange, "T stock", T's)
	strict  bool           // ambiguous symbol: exact holds only explicit-marker forms
	primary *regexp.Regexp
	aliases []*regexp.Regexp
	execs   []*regexp.Regexp
	// significant company-name tokens for the URL-slug check
	nameTokens []string
}

// NewMatcher precompiles per-symbol patterns for every directory entry.
func NewMatcher(cfg *config.Config, dir *directory.Directory) *Matcher {
	m := &Matcher{
		cfg:       cfg.Scoring.Matcher,
		dir:       dir,
		patterns:  make(map[string]*symbolPatterns, dir.Len()),
		ambiguous: make(map[string]struct{}, len(cfg.Scoring.Matcher.AmbiguousTickers)),
		slugStop:  make(map[string]struct{}, len(cfg.Scoring.Matcher.SlugStopWords)),
	}
	for _, t := range cfg.Scoring.Matcher.AmbiguousTickers {
		m.ambiguous[strings.ToUpper(t)] = struct{}{}
	}
	for _, w := range cfg.Scoring.Matcher.SlugStopWords {
		m.slugStop[strings.ToLower(w)] = struct{}{}
	}
	for _, sym := range dir.Symbols() {
		p, _ := dir.Lookup(sym)
		m.patterns[sym] = m.compile(p)
	}
	return m
}

// SetLogger attaches a diagnostics logger. Logging is a side channel only
// and never affects scoring output.
func (m *Matcher) SetLogger(l *applogger.Logger) { m.log = l }

// SetMetrics attaches a rejection counter, same side-channel contract as
// SetLogger.
func (m *Matcher) SetMetrics(rec domrepo.Metrics) { m.metrics = rec }

func (m *Matcher) compile(p models.CompanyProfile) *symbolPatterns {
	sp := &symbolPatterns{profile: p}
	q := regexp.QuoteMeta(p.Symbol)
	_, sp.strict = m.ambiguous[p.Symbol]
	if sp.strict {
		// Ambiguous symbols collide with common English words, so plain
		// marker forms like "T:" or "T stock" are disabled; only explicit
		// dollar/parenthetical/exchange markers count.
		sp.exact = regexp.MustCompile(
			`\$` + q + `\b` +
				`|\(` + q + `\)` +
				`|\b(?:NYSE|NASDAQ|Nasdaq|AMEX):\s?` + q + `\b`)
	} else {
		sp.exact = regexp.MustCompile(
			`\$` + q + `\b` +
				`|\(` + q + `\)` +
				`|\b` + q + `:` +
				`|\b(?:NYSE|NASDAQ|Nasdaq|AMEX):\s?` + q + `\b` +
				`|\b` + q + ` stock\b` +
				`|\b` + q + `'s`)
	}
	sp.primary = phrasePattern(p.PrimaryName)
	for _, a := range p.Aliases {
		if a != "" {
			sp.aliases = append(sp.aliases, phrasePattern(a))
		}
	}
	for _, e := range p.Executives {
		if e != "" {
			sp.execs = append(sp.execs, phrasePattern(e))
		}
	}
	seen := map[string]struct{}{}
	for _, name := range append([]string{p.PrimaryName}, p.Aliases...) {
		for _, tok := range strings.Fields(util.NormalizeText(name)) {
			if len(tok) < 3 {
				continue
			}
			if _, stop := m.slugStop[tok]; stop {
				continue
			}
			if _, dup := seen[tok]; dup {
				continue
			}
			seen[tok] = struct{}{}
			sp.nameTokens = append(sp.nameTokens, tok)
		}
	}
	return sp
}

func phrasePattern(s string) *regexp.Regexp {
	s = strings.TrimSpace(s)
	pat := `(?i)\b` + regexp.QuoteMeta(s)
	// A trailing \b after punctuation ("Apple Inc.") would require a word
	// character to follow, so only word-final phrases get the boundary.
	if n := len(s); n > 0 && isWordByte(s[n-1]) {
		pat += `\b`
	}
	return regexp.MustCompile(pat)
}

func isWordByte(b byte) bool {
	return b == '_' || ('0' <= b && b <= '9') || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// Match evaluates one article against one ticker. Returns false when no
// layer fires, the ambiguous gate vetoes, or confidence ends below the floor.
func (m *Matcher) Match(a models.Article, symbol string) (models.TickerMatch, bool) {
	sp, ok := m.patterns[strings.ToUpper(symbol)]
	if !ok {
		return models.TickerMatch{}, false
	}

	text := a.Headline + " " + a.Description
	match := models.TickerMatch{Symbol: sp.profile.Symbol}
	match.PrimaryNameSeen = sp.primary.MatchString(text)

	// Layer selection: first non-zero confidence wins. Product mentions are
	// deliberately never sufficient on their own; a product name tells us a
	// topic, not which listed company the story is about.
	switch {
	case m.matchExact(sp, a, &match):
	case m.matchSlug(sp, a, &match):
	case m.matchName(sp, a, &match):
	case m.matchExecutive(sp, a, &match):
	default:
		return models.TickerMatch{}, false
	}

	// Context words only adjust an already-selected layer.
	m.adjustContext(sp, text, &match)

	if bonus, ok := m.cfg.SourceBonus[strings.ToLower(a.Source)]; ok && match.Confidence > 0 {
		match.Confidence += bonus
	}
	match.Confidence = clamp(match.Confidence, 0, 100)

	if !m.passGate(sp, &match) {
		m.reject(a, sp.profile.Symbol, "ambiguous gate", match.Confidence)
		return models.TickerMatch{}, false
	}
	if match.Confidence < m.cfg.MinConfidence {
		m.reject(a, sp.profile.Symbol, "below floor", match.Confidence)
		return models.TickerMatch{}, false
	}
	return match, true
}

func (m *Matcher) matchExact(sp *symbolPatterns, a models.Article, match *models.TickerMatch) bool {
	if t := sp.exact.FindString(a.Headline); t != "" {
		match.Confidence = m.cfg.ExactConfidence + m.cfg.ExactHeadlineBonus
		match.MatchType = models.MatchExact
		match.MatchedTerms = []string{t}
		match.HeadlineHit = true
		match.Reason = fmt.Sprintf("ticker mention %q in headline", t)
		return true
	}
	if t := sp.exact.FindString(a.Description); t != "" {
		match.Confidence = m.cfg.ExactConfidence
		match.MatchType = models.MatchExact
		match.MatchedTerms = []string{t}
		match.Reason = fmt.Sprintf("ticker mention %q", t)
		return true
	}
	return false
}

func (m *Matcher) matchSlug(sp *symbolPatterns, a models.Article, match *models.TickerMatch) bool {
	slugs := urlSlugs(a.CanonicalURL, m.slugStop)
	ticker := strings.ToLower(sp.profile.Symbol)
	for _, slug := range slugs {
		if len(ticker) >= 3 && slug == ticker {
			match.Confidence = m.cfg.SlugConfidence
			match.MatchType = models.MatchExact
			match.MatchedTerms = []string{slug}
			match.SlugHit = true
			match.Reason = fmt.Sprintf("url slug %q equals ticker", slug)
			return true
		}
		for _, tok := range sp.nameTokens {
			if strings.Contains(slug, tok) && float64(len(tok)) >= m.cfg.SlugNameCoverage*float64(len(slug)) {
				match.Confidence = m.cfg.SlugConfidence
				match.MatchType = models.MatchCompany
				match.MatchedTerms = []string{slug}
				match.SlugHit = true
				match.Reason = fmt.Sprintf("url slug %q matches company name", slug)
				return true
			}
		}
	}
	return false
}

func (m *Matcher) matchName(sp *symbolPatterns, a models.Article, match *models.TickerMatch) bool {
	if t := sp.primary.FindString(a.Headline); t != "" {
		match.Confidence = m.cfg.NameConfidence + m.cfg.NameHeadlineBonus
		match.MatchType = models.MatchCompany
		match.MatchedTerms = []string{t}
		match.HeadlineHit = true
		match.Reason = fmt.Sprintf("company name %q in headline", t)
		return true
	}
	if t := sp.primary.FindString(a.Description); t != "" {
		match.Confidence = m.cfg.NameConfidence
		match.MatchType = models.MatchCompany
		match.MatchedTerms = []string{t}
		match.Reason = fmt.Sprintf("company name %q", t)
		return true
	}
	for _, re := range sp.aliases {
		if t := re.FindString(a.Headline); t != "" {
			match.Confidence = m.cfg.AliasConfidence + m.cfg.NameHeadlineBonus
			match.MatchType = models.MatchCompany
			match.MatchedTerms = []string{t}
			match.HeadlineHit = true
			match.Reason = fmt.Sprintf("company alias %q in headline", t)
			return true
		}
		if t := re.FindString(a.Description); t != "" {
			match.Confidence = m.cfg.AliasConfidence
			match.MatchType = models.MatchCompany
			match.MatchedTerms = []string{t}
			match.Reason = fmt.Sprintf("company alias %q", t)
			return true
		}
	}
	return false
}

func (m *Matcher) matchExecutive(sp *symbolPatterns, a models.Article, match *models.TickerMatch) bool {
	for _, re := range sp.execs {
		if t := re.FindString(a.Headline); t != "" {
			match.Confidence = m.cfg.ExecConfidence + m.cfg.ExecHeadlineBonus
			match.MatchType = models.MatchExecutive
			match.MatchedTerms = []string{t}
			match.HeadlineHit = true
			match.Reason = fmt.Sprintf("executive %q in headline", t)
			return true
		}
		if t := re.FindString(a.Description); t != "" {
			match.Confidence = m.cfg.ExecConfidence
			match.MatchType = models.MatchExecutive
			match.MatchedTerms = []string{t}
			match.Reason = fmt.Sprintf("executive %q", t)
			return true
		}
	}
	return false
}

func (m *Matcher) adjustContext(sp *symbolPatterns, text string, match *models.TickerMatch) {
	norm := " " + util.NormalizeText(text) + " "
	for _, w := range sp.profile.ContextWords {
		if containsPhrase(norm, w) {
			match.Confidence += m.cfg.ContextBonus
			match.MatchedTerms = append(match.MatchedTerms, w)
		}
	}
	for _, w := range sp.profile.NegativeWords {
		if containsPhrase(norm, w) {
			match.Confidence -= m.cfg.ContextPenalty
		}
	}
}

// passGate applies the second-pass veto for ambiguous tickers. Layers alone
// over-fire on short and common-word symbols, so those need stronger
// evidence: a slug hit, an exact/name hit in the headline, or high enough
// confidence. Clearly named companies relax this to a primary-name mention.
func (m *Matcher) passGate(sp *symbolPatterns, match *models.TickerMatch) bool {
	if !sp.strict {
		return true
	}
	if sp.profile.ClearlyNamed {
		return match.PrimaryNameSeen || match.Confidence >= m.cfg.ClearNameFloor
	}
	headlineEvidence := match.HeadlineHit &&
		(match.MatchType == models.MatchExact || match.MatchType == models.MatchCompany)
	return match.SlugHit || headlineEvidence || match.Confidence >= m.cfg.AmbiguousFloor
}

func (m *Matcher) reject(a models.Article, symbol, why string, conf float64) {
	if m.metrics != nil {
		m.metrics.RecordRejection(why)
	}
	if m.log == nil {
		return
	}
	m.log.Debug("match rejected",
		applogger.String("symbol", symbol),
		applogger.String("article", a.ID),
		applogger.String("why", why),
		applogger.Any("confidence", conf),
	)
}

// urlSlugs splits the canonical URL path into candidate slugs: segments of
// length >= 3 that are not generic corporate words. A missing or malformed
// URL just yields no slugs; the article still flows through other layers.
func urlSlugs(canonical string, stop map[string]struct{}) []string {
	if canonical == "" {
		return nil
	}
	u, err := url.Parse(canonical)
	if err != nil {
		return nil
	}
	parts := strings.FieldsFunc(strings.ToLower(u.Path), func(r rune) bool {
		return r == '/' || r == '-' || r == '_' || r == '.'
	})
	out := parts[:0]
	for _, p := range parts {
		if len(p) < 3 {
			continue
		}
		if _, bad := stop[p]; bad {
			continue
		}
		out = append(out, p)
	}
	return out
}

func containsPhrase(normText, phrase string) bool {
	p := util.NormalizeText(phrase)
	if p == "" {
		return false
	}
	return strings.Contains(normText, " "+p+" ")
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ domsvc.TickerMatcher = (*Matcher)(nil)

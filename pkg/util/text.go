package util

import (
	"strings"
	"unicode"
)

// NormalizeText lowercases, strips non-alphanumerics, and collapses
// whitespace. Used for title dedup keys and headline similarity.
func NormalizeText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteByte(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// WordSet returns the set of normalized words in s.
func WordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(NormalizeText(s)) {
		set[w] = struct{}{}
	}
	return set
}

// OverlapSimilarity computes the overlap coefficient of two strings' word
// sets: intersection size over the smaller set. This is not Jaccard
// (intersection over union); a short headline fully contained in a longer
// rewrite of the same story scores 1.0, which intersection-over-union would
// dilute. Two empty strings are identical (1.0).
func OverlapSimilarity(a, b string) float64 {
	sa, sb := WordSet(a), WordSet(b)
	if len(sa) == 0 && len(sb) == 0 {
		return 1.0
	}
	if len(sa) == 0 || len(sb) == 0 {
		return 0
	}
	inter := 0
	for w := range sa {
		if _, ok := sb[w]; ok {
			inter++
		}
	}
	min := len(sa)
	if len(sb) < min {
		min = len(sb)
	}
	return float64(inter) / float64(min)
}

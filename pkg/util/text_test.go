package util

import "testing"

func TestNormalizeText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fed Raises Rates!", "fed raises rates"},
		{"  Apple's   iPhone-16 ", "apple s iphone 16"},
		{"", ""},
		{"---", ""},
	}
	for _, c := range cases {
		if got := NormalizeText(c.in); got != c.want {
			t.Fatalf("NormalizeText(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestOverlapSimilarityIdentity(t *testing.T) {
	if got := OverlapSimilarity("Fed raises rates", "fed RAISES rates."); got != 1.0 {
		t.Fatalf("expected identical word sets to score 1.0, got %v", got)
	}
	if got := OverlapSimilarity("", ""); got != 1.0 {
		t.Fatalf("two empty strings must be identical, got %v", got)
	}
}

func TestOverlapSimilaritySymmetry(t *testing.T) {
	a, b := "Fed raises rates by 25 basis points", "Treasury yields climb after Fed decision"
	if OverlapSimilarity(a, b) != OverlapSimilarity(b, a) {
		t.Fatalf("similarity must be symmetric")
	}
}

func TestOverlapSimilarityDisjoint(t *testing.T) {
	if got := OverlapSimilarity("oil prices surge", "chip exports banned"); got != 0 {
		t.Fatalf("disjoint word sets must score 0, got %v", got)
	}
}

func TestOverlapSimilarityContainment(t *testing.T) {
	// A terse headline and a longer rewrite of the same story must count
	// as near-duplicates even though the union is much bigger.
	a := "Fed holds rates steady"
	b := "Federal Reserve holds interest rates steady, surprising markets"
	got := OverlapSimilarity(a, b)
	if got <= 0.7 {
		t.Fatalf("contained headline should exceed 0.7, got %v", got)
	}
}

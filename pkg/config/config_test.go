package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	c.Directory.Path = "companies.yaml"
	if err := c.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
	if c.Scoring.Matcher.MinConfidence != 40 {
		t.Fatalf("min confidence = %v, want 40", c.Scoring.Matcher.MinConfidence)
	}
	if c.Scoring.Matcher.SourceBonus["bloomberg"] != 5 {
		t.Fatalf("source bonus map not populated: %v", c.Scoring.Matcher.SourceBonus)
	}
	if len(c.Scoring.Matcher.AmbiguousTickers) == 0 {
		t.Fatalf("ambiguous ticker list not populated")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte(`
environment: prod
directory:
  path: companies.yaml
scoring:
  matcher:
    min_confidence: 55
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if c.Scoring.Matcher.MinConfidence != 55 {
		t.Fatalf("override lost: %v", c.Scoring.Matcher.MinConfidence)
	}
	// Untouched thresholds keep their defaults.
	if c.Scoring.Matcher.ExactConfidence != 95 {
		t.Fatalf("default lost: %v", c.Scoring.Matcher.ExactConfidence)
	}
	if c.Server.Port != 8080 {
		t.Fatalf("server default lost: %d", c.Server.Port)
	}
}

func TestValidateRejectsBadThresholds(t *testing.T) {
	c := Default()
	c.Directory.Path = "companies.yaml"
	c.Scoring.Matcher.MinConfidence = 150
	if err := c.Validate(); err == nil {
		t.Fatalf("expected out-of-range min_confidence to fail")
	}

	c = Default()
	c.Directory.Path = "companies.yaml"
	c.Scoring.Macro.SimilarityThreshold = 0
	if err := c.Validate(); err == nil {
		t.Fatalf("expected zero similarity threshold to fail")
	}

	c = Default()
	c.Directory.Path = "companies.yaml"
	c.Kafka.Enabled = true
	if err := c.Validate(); err == nil {
		t.Fatalf("expected enabled kafka without brokers to fail")
	}
}

package directory

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"MarketLens/internal/domain/models"
)

// Directory is the static ticker -> company profile table. Loaded once and
// read-only afterwards, so concurrent reads need no locking.
type Directory struct {
	profiles map[string]models.CompanyProfile
	symbols  []string
}

type directoryFile struct {
	Companies []models.CompanyProfile `yaml:"companies"`
}

// Load reads company profiles from a YAML file.
func Load(path string) (*Directory, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory: %w", err)
	}
	var f directoryFile
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse directory: %w", err)
	}
	return New(f.Companies)
}

// New builds a directory from in-memory profiles.
func New(profiles []models.CompanyProfile) (*Directory, error) {
	d := &Directory{profiles: make(map[string]models.CompanyProfile, len(profiles))}
	for _, p := range profiles {
		sym := strings.ToUpper(strings.TrimSpace(p.Symbol))
		if sym == "" {
			return nil, fmt.Errorf("company profile with empty symbol (name %q)", p.PrimaryName)
		}
		if p.PrimaryName == "" {
			return nil, fmt.Errorf("company profile %s has no primary name", sym)
		}
		if _, dup := d.profiles[sym]; dup {
			return nil, fmt.Errorf("duplicate company profile for %s", sym)
		}
		p.Symbol = sym
		d.profiles[sym] = p
		d.symbols = append(d.symbols, sym)
	}
	sort.Strings(d.symbols)
	return d, nil
}

// Lookup returns the profile for a ticker, if present.
func (d *Directory) Lookup(symbol string) (models.CompanyProfile, bool) {
	p, ok := d.profiles[strings.ToUpper(symbol)]
	return p, ok
}

// Symbols returns every tracked ticker in deterministic order.
func (d *Directory) Symbols() []string {
	out := make([]string, len(d.symbols))
	copy(out, d.symbols)
	return out
}

// Len reports the number of tracked tickers.
func (d *Directory) Len() int { return len(d.profiles) }

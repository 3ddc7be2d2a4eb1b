package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Directory struct {
		Path string `yaml:"path" default:"config/companies.yaml"`
	} `yaml:"directory"`
	Kafka struct {
		Enabled       bool     `yaml:"enabled"`
		Brokers       []string `yaml:"brokers"`
		ArticlesTopic string   `yaml:"articles_topic" default:"news.articles"`
		MatchesTopic  string   `yaml:"matches_topic" default:"news.matches"`
		LogsTopic     string   `yaml:"logs_topic" default:"news.logs"`
		RequiredAcks  int      `yaml:"required_acks" default:"-1"`
		Compression   string   `yaml:"compression" default:"gzip"`
		Producer      struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3"`
			Linger       time.Duration `yaml:"linger" default:"200ms"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
		Consumer struct {
			GroupID    string        `yaml:"group_id" default:"marketlens"`
			Workers    int           `yaml:"workers" default:"2"`
			BufferSize int           `yaml:"buffer_size" default:"100"`
			RetryMax   int           `yaml:"retry_max" default:"3"`
			BackoffMin time.Duration `yaml:"backoff_min" default:"50ms"`
			BackoffMax time.Duration `yaml:"backoff_max" default:"2s"`
			DLQTopic   string        `yaml:"dlq_topic"`
		} `yaml:"consumer"`
	} `yaml:"kafka"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// ScoringConfig carries every empirically tuned threshold in the engine.
// Values are set by ops, not buried in code; zero fields fall back to the
// documented defaults.
type ScoringConfig struct {
	Matcher    MatcherConfig    `yaml:"matcher"`
	Ranking    RankingConfig    `yaml:"ranking"`
	Macro      MacroConfig      `yaml:"macro"`
	Confidence ConfidenceConfig `yaml:"confidence"`
	Quality    QualityConfig    `yaml:"quality"`
}

type MatcherConfig struct {
	// MinConfidence is the final acceptance floor for any match.
	MinConfidence float64 `yaml:"min_confidence" default:"40"`

	ExactConfidence    float64 `yaml:"exact_confidence" default:"95"`
	ExactHeadlineBonus float64 `yaml:"exact_headline_bonus" default:"5"`

	SlugConfidence float64 `yaml:"slug_confidence" default:"80"`
	// SlugNameCoverage is the minimum share of a URL slug a company-name
	// token must cover to count as a name slug.
	SlugNameCoverage float64  `yaml:"slug_name_coverage" default:"0.6"`
	SlugStopWords    []string `yaml:"slug_stop_words" default:"[\"group\",\"inc\",\"holdings\",\"corp\",\"company\",\"stock\",\"stocks\",\"shares\",\"news\",\"market\",\"markets\",\"ltd\",\"plc\"]"`

	NameConfidence    float64 `yaml:"name_confidence" default:"85"`
	AliasConfidence   float64 `yaml:"alias_confidence" default:"70"`
	NameHeadlineBonus float64 `yaml:"name_headline_bonus" default:"10"`

	ExecConfidence    float64 `yaml:"exec_confidence" default:"60"`
	ExecHeadlineBonus float64 `yaml:"exec_headline_bonus" default:"10"`

	ContextBonus   float64 `yaml:"context_bonus" default:"5"`
	ContextPenalty float64 `yaml:"context_penalty" default:"20"`

	// SourceBonus is a per-outlet confidence bonus applied only when a
	// layer already fired.
	SourceBonus map[string]float64 `yaml:"source_bonus" default:"{\"bloomberg\":5,\"reuters\":5,\"wsj\":4,\"ft\":4,\"barrons\":3,\"cnbc\":3,\"marketwatch\":2}"`

	// AmbiguousTickers are short or common-word symbols that over-fire on
	// plain word-boundary matching and go through the stricter gate.
	AmbiguousTickers []string `yaml:"ambiguous_tickers" default:"[\"A\",\"C\",\"D\",\"E\",\"F\",\"G\",\"K\",\"L\",\"M\",\"O\",\"R\",\"S\",\"T\",\"U\",\"V\",\"X\",\"Z\",\"ALL\",\"ARE\",\"CAT\",\"FAST\",\"GOOD\",\"KEY\",\"LOVE\",\"NOW\",\"ON\",\"OPEN\",\"PLAY\",\"REAL\",\"RIDE\",\"SEE\",\"SO\",\"WISH\"]"`
	// AmbiguousFloor accepts an ambiguous-ticker match outright at or above
	// this confidence; ClearNameFloor is the equivalent for clearly named
	// companies. Both are empirical.
	AmbiguousFloor float64 `yaml:"ambiguous_floor" default:"80"`
	ClearNameFloor float64 `yaml:"clear_name_floor" default:"70"`
}

type RankingConfig struct {
	DefaultConfidence   float64            `yaml:"default_confidence" default:"50"`
	RecencyCapHours     float64            `yaml:"recency_cap_hours" default:"24"`
	EventMultipliers    map[string]float64 `yaml:"event_multipliers" default:"{\"earnings\":1.5,\"guidance\":1.5,\"lawsuit\":1.3,\"product\":1.2}"`
	TopSourceMultiplier float64            `yaml:"top_source_multiplier" default:"1.1"`
	TopSources          []string           `yaml:"top_sources" default:"[\"bloomberg\",\"reuters\",\"wsj\",\"ft\"]"`
}

type MacroConfig struct {
	// SimilarityThreshold is the word-set overlap above which two headlines
	// are near-duplicates.
	SimilarityThreshold float64 `yaml:"similarity_threshold" default:"0.7"`
	MaxHeadlines        int     `yaml:"max_headlines" default:"3"`
}

type ConfidenceConfig struct {
	Temporal struct {
		TodayBeforeOpen float64 `yaml:"today_before_open" default:"40"`
		TodayAfterClose float64 `yaml:"today_after_close" default:"35"`
		Day1            float64 `yaml:"day_1" default:"35"`
		Day2            float64 `yaml:"day_2" default:"25"`
		Day3to5         float64 `yaml:"day_3_to_5" default:"15"`
		Day6to7         float64 `yaml:"day_6_to_7" default:"8"`
		Tomorrow        float64 `yaml:"tomorrow" default:"20"`
		Upcoming2to5    float64 `yaml:"upcoming_2_to_5" default:"10"`
	} `yaml:"temporal"`
	Volume struct {
		ExtremeRatio  float64 `yaml:"extreme_ratio" default:"3.0"`
		ExtremeBonus  float64 `yaml:"extreme_bonus" default:"25"`
		HighRatio     float64 `yaml:"high_ratio" default:"2.0"`
		HighBonus     float64 `yaml:"high_bonus" default:"18"`
		ElevatedRatio float64 `yaml:"elevated_ratio" default:"1.5"`
		ElevatedBonus float64 `yaml:"elevated_bonus" default:"10"`
	} `yaml:"volume"`
	News struct {
		Keywords  []string `yaml:"keywords" default:"[\"earnings\",\"eps\",\"revenue\",\"guidance\",\"outlook\",\"beats\",\"misses\",\"beat\",\"miss\",\"quarter\",\"quarterly\",\"q1\",\"q2\",\"q3\",\"q4\",\"profit\",\"forecast\",\"results\"]"`
		HighCount int      `yaml:"high_count" default:"5"`
		HighBonus float64  `yaml:"high_bonus" default:"20"`
		MidCount  int      `yaml:"mid_count" default:"3"`
		MidBonus  float64  `yaml:"mid_bonus" default:"14"`
		LowCount  int      `yaml:"low_count" default:"1"`
		LowBonus  float64  `yaml:"low_bonus" default:"8"`
	} `yaml:"news"`
	Analyst struct {
		HighCount int     `yaml:"high_count" default:"3"`
		HighBonus float64 `yaml:"high_bonus" default:"10"`
		MidCount  int     `yaml:"mid_count" default:"2"`
		MidBonus  float64 `yaml:"mid_bonus" default:"7"`
		LowCount  int     `yaml:"low_count" default:"1"`
		LowBonus  float64 `yaml:"low_bonus" default:"4"`
	} `yaml:"analyst"`
	Gap struct {
		LargeRatio float64 `yaml:"large_ratio" default:"0.05"`
		LargeBonus float64 `yaml:"large_bonus" default:"10"`
		MidRatio   float64 `yaml:"mid_ratio" default:"0.03"`
		MidBonus   float64 `yaml:"mid_bonus" default:"7"`
		SmallRatio float64 `yaml:"small_ratio" default:"0.015"`
		SmallBonus float64 `yaml:"small_bonus" default:"4"`
	} `yaml:"gap"`
	Negative struct {
		QuietVolumeRatio   float64 `yaml:"quiet_volume_ratio" default:"1.2"`
		QuietVolumePenalty float64 `yaml:"quiet_volume_penalty" default:"15"`
		NoNewsPenalty      float64 `yaml:"no_news_penalty" default:"10"`
		StaleDays          int     `yaml:"stale_days" default:"5"`
		StaleVolumeRatio   float64 `yaml:"stale_volume_ratio" default:"1.5"`
		StalePenalty       float64 `yaml:"stale_penalty" default:"10"`
	} `yaml:"negative"`
	RecentDays   int     `yaml:"recent_days" default:"7"`
	UpcomingDays int     `yaml:"upcoming_days" default:"7"`
	IncludeFloor float64 `yaml:"include_floor" default:"30"`
	Labels       struct {
		VeryHigh float64 `yaml:"very_high" default:"75"`
		High     float64 `yaml:"high" default:"55"`
		Moderate float64 `yaml:"moderate" default:"35"`
		Low      float64 `yaml:"low" default:"15"`
	} `yaml:"labels"`
}

type QualityConfig struct {
	// Band boundaries in percent of estimate.
	StrongBeatPct float64 `yaml:"strong_beat_pct" default:"5.0"`
	BeatPct       float64 `yaml:"beat_pct" default:"1.0"`
	MissPct       float64 `yaml:"miss_pct" default:"-1.0"`
	StrongMissPct float64 `yaml:"strong_miss_pct" default:"-5.0"`
	EPSWeight     float64 `yaml:"eps_weight" default:"0.6"`
	Stars         struct {
		Five  float64 `yaml:"five" default:"90"`
		Four  float64 `yaml:"four" default:"70"`
		Three float64 `yaml:"three" default:"50"`
		Two   float64 `yaml:"two" default:"30"`
	} `yaml:"stars"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Fill unset thresholds with defaults, then validate.
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("ARTICLES_TOPIC"); v != "" {
		c.Kafka.ArticlesTopic = v
	}
	if v := os.Getenv("MATCHES_TOPIC"); v != "" {
		c.Kafka.MatchesTopic = v
	}
	if v := os.Getenv("DIRECTORY_PATH"); v != "" {
		c.Directory.Path = v
	}

	return c, nil
}

// Default returns a config with every threshold at its default value.
// Used by tests and by callers embedding the engine as a library.
func Default() *Config {
	var c Config
	c.Environment = "dev"
	_ = defaults.Set(&c)
	return &c
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Directory.Path == "" {
		return fmt.Errorf("directory.path is required")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	m := c.Scoring.Matcher
	if m.MinConfidence < 0 || m.MinConfidence > 100 {
		return fmt.Errorf("scoring.matcher.min_confidence must be within [0,100], got %v", m.MinConfidence)
	}
	if s := c.Scoring.Macro.SimilarityThreshold; s <= 0 || s > 1 {
		return fmt.Errorf("scoring.macro.similarity_threshold must be within (0,1], got %v", s)
	}
	q := c.Scoring.Quality
	if !(q.StrongBeatPct > q.BeatPct && q.BeatPct > 0 && 0 > q.MissPct && q.MissPct > q.StrongMissPct) {
		return fmt.Errorf("scoring.quality bands must be ordered strong_beat > beat > 0 > miss > strong_miss")
	}
	if q.EPSWeight < 0 || q.EPSWeight > 1 {
		return fmt.Errorf("scoring.quality.eps_weight must be within [0,1], got %v", q.EPSWeight)
	}
	return nil
}

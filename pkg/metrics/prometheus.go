package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	articlesScored prometheus.Counter
	matchesTotal   *prometheus.CounterVec
	rejections     *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	latency        *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		articlesScored: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "marketlens_articles_scored_total",
				Help: "Total number of articles run through attribution",
			},
		),
		matchesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_matches_total",
				Help: "Total number of accepted ticker matches",
			},
			[]string{"symbol", "match_type"},
		),
		rejections: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_match_rejections_total",
				Help: "Total number of vetoed or below-floor matches",
			},
			[]string{"reason"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "marketlens_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "marketlens_operation_duration_seconds",
				Help:    "Duration of scoring operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordArticlesScored records a batch of scored articles.
func (r *Recorder) RecordArticlesScored(n int) {
	r.articlesScored.Add(float64(n))
}

// RecordMatch records an accepted match for a symbol.
func (r *Recorder) RecordMatch(symbol, matchType string) {
	r.matchesTotal.WithLabelValues(symbol, matchType).Inc()
}

// RecordRejection records a vetoed match.
func (r *Recorder) RecordRejection(reason string) {
	r.rejections.WithLabelValues(reason).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

package di

import (
	"fmt"
	"time"

	"MarketLens/internal/domain/repository"
	domsvc "MarketLens/internal/domain/service"
	"MarketLens/internal/handler/api"
	internalrepo "MarketLens/internal/repository"
	"MarketLens/internal/services/directory"
	"MarketLens/internal/services/earnings"
	"MarketLens/internal/services/macro"
	"MarketLens/internal/services/matching"
	"MarketLens/internal/services/newsrank"
	"MarketLens/internal/usecase"
	"MarketLens/pkg/config"
	xhttp "MarketLens/pkg/http"
	pkgkafka "MarketLens/pkg/kafka"
	"MarketLens/pkg/logger"
	"MarketLens/pkg/metrics"
	"MarketLens/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	format := "json"
	if cfg.Environment == "dev" {
		format = "console"
	}
	l, err := logger.New(&logger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideDirectory loads the static company directory.
func ProvideDirectory(cfg *config.Config) (*directory.Directory, error) {
	dir, err := directory.Load(cfg.Directory.Path)
	if err != nil {
		return nil, fmt.Errorf("company directory: %w", err)
	}
	return dir, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideMatcher creates the ticker matcher with diagnostics logging and
// rejection counters attached.
func ProvideMatcher(cfg *config.Config, dir *directory.Directory, l *logger.Logger, rec repository.Metrics) domsvc.TickerMatcher {
	m := matching.NewMatcher(cfg, dir)
	m.SetLogger(l)
	m.SetMetrics(rec)
	return m
}

// ProvideAttributor creates the batch attributor.
func ProvideAttributor(m domsvc.TickerMatcher, dir *directory.Directory) domsvc.Attributor {
	return matching.NewAttributor(m, dir)
}

// ProvideDeduplicator creates the article deduplicator.
func ProvideDeduplicator() domsvc.Deduplicator {
	return newsrank.NewDeduplicator()
}

// ProvideRanker creates the composite article ranker.
func ProvideRanker(cfg *config.Config) domsvc.Ranker {
	return newsrank.NewRanker(cfg)
}

// ProvideMacroGrouper creates the macro event grouper.
func ProvideMacroGrouper(cfg *config.Config) domsvc.MacroGrouper {
	return macro.NewGrouper(cfg)
}

// ProvideConfidenceScorer creates the earnings confidence scorer.
func ProvideConfidenceScorer(cfg *config.Config) domsvc.ConfidenceScorer {
	return earnings.NewConfidenceScorer(cfg)
}

// ProvideQualityScorer creates the beat quality scorer.
func ProvideQualityScorer(cfg *config.Config) domsvc.QualityScorer {
	return earnings.NewQualityScorer(cfg)
}

// ProvideNewsPipeline creates the attribution pipeline use case.
func ProvideNewsPipeline(
	dedupe domsvc.Deduplicator,
	attributor domsvc.Attributor,
	ranker domsvc.Ranker,
	grouper domsvc.MacroGrouper,
	m repository.Metrics,
) *usecase.NewsPipeline {
	return usecase.NewNewsPipeline(dedupe, attributor, ranker, grouper, m)
}

// ProvideEarningsScoring creates the earnings scoring use case.
func ProvideEarningsScoring(conf domsvc.ConfidenceScorer, qual domsvc.QualityScorer, m repository.Metrics) *usecase.EarningsScoring {
	return usecase.NewEarningsScoring(conf, qual, m)
}

// ProvideHTTPHandler creates the Echo scoring handler.
func ProvideHTTPHandler(l *logger.Logger, pipeline *usecase.NewsPipeline, earn *usecase.EarningsScoring) xhttp.Handler {
	return api.NewScoringEchoHandler(l, pipeline, earn)
}

// ProvideKafkaProducer creates a Kafka producer, or nil when the pipeline is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideMatchPublisher creates the Kafka match publisher, or nil when disabled.
func ProvideMatchPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.Publisher {
	if producer == nil {
		return nil
	}
	return internalrepo.NewKafkaMatchPublisher(producer, cfg.Kafka.MatchesTopic)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML, or nil when disabled.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideKafkaArticlesHandler registers the handler for the articles topic.
func ProvideKafkaArticlesHandler(pipeline *usecase.NewsPipeline, pub repository.Publisher, m repository.Metrics, cfg *config.Config) *usecase.KafkaArticlesHandler {
	if pub == nil {
		return nil
	}
	return usecase.NewKafkaArticlesHandler(cfg.Kafka.ArticlesTopic, pipeline, pub, m)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *logger.Logger,
	handler xhttp.Handler,
	producer *pkgkafka.Producer,
	consumer *pkgkafka.Consumer,
	kh *usecase.KafkaArticlesHandler,
	pub repository.Publisher,
) *server.App {
	app := server.New(cfg, l, handler)
	if cfg.Kafka.Enabled && consumer != nil && kh != nil {
		consumer.WithConsumerHook(pkgkafka.NoopHook{})
		app.SetKafka(consumer, kh, pub)
		// ship aggregated error logs over the same broker
		l.AddCollector(&logger.CollectionConfig{
			TimeInterval:   30 * time.Second,
			CountThreshold: 100,
			Topic:          cfg.Kafka.LogsTopic,
			Publisher:      producer,
		})
	}
	return app
}

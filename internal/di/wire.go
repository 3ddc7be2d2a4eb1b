//go:build wireinject
// +build wireinject

package di

import (
	"MarketLens/pkg/config"
	"MarketLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideLogger,
		ProvideMetrics,

		// Static reference data
		ProvideDirectory,

		// Scoring services
		ProvideMatcher,
		ProvideAttributor,
		ProvideDeduplicator,
		ProvideRanker,
		ProvideMacroGrouper,
		ProvideConfidenceScorer,
		ProvideQualityScorer,

		// Use cases
		ProvideNewsPipeline,
		ProvideEarningsScoring,

		// Transport
		ProvideHTTPHandler,
		ProvideKafkaProducer,
		ProvideMatchPublisher,
		ProvideKafkaConsumer,
		ProvideKafkaArticlesHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}

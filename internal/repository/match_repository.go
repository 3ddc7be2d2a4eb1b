package repository

import (
	"context"
	"time"

	"MarketLens/internal/domain/models"
	"MarketLens/internal/domain/repository"
	pkgkafka "MarketLens/pkg/kafka"
)

// KafkaMatchPublisher implements Publisher for Kafka, keyed by ticker so one
// symbol's attributions land on one partition in order.
type KafkaMatchPublisher struct {
	producer *pkgkafka.Producer
	topic    string
}

// NewKafkaMatchPublisher creates a Kafka match publisher.
func NewKafkaMatchPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
	return &KafkaMatchPublisher{producer: producer, topic: topic}
}

func (p *KafkaMatchPublisher) PublishMatches(ctx context.Context, symbol string, articles []models.ScoredArticle) error {
	if len(articles) == 0 {
		return nil
	}
	return p.producer.Publish(ctx, p.topic, []byte(symbol), map[string]interface{}{
		"symbol":    symbol,
		"scored_at": time.Now().UTC().Format(time.RFC3339),
		"articles":  articles,
	})
}

func (p *KafkaMatchPublisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}

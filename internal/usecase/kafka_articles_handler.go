package usecase

import (
	"context"
	"encoding/json"
	"time"

	"MarketLens/internal/domain/models"
	domrepo "MarketLens/internal/domain/repository"
	pkgkafka "MarketLens/pkg/kafka"
)

// KafkaArticlesHandler consumes already-ingested article batches, runs the
// attribution pipeline against the directory universe, and publishes the
// per-ticker results. The scoring itself stays pure; this handler is just
// the caller.
type KafkaArticlesHandler struct {
	topic     string
	pipeline  *NewsPipeline
	publisher domrepo.Publisher
	metrics   domrepo.Metrics
}

func NewKafkaArticlesHandler(topic string, pipeline *NewsPipeline, publisher domrepo.Publisher, metrics domrepo.Metrics) *KafkaArticlesHandler {
	return &KafkaArticlesHandler{topic: topic, pipeline: pipeline, publisher: publisher, metrics: metrics}
}

func (h *KafkaArticlesHandler) Topic() string { return h.topic }

// incoming message schema: {articles: [...]} or a single bare article
func (h *KafkaArticlesHandler) Handle(ctx context.Context, b []byte) error {
	var m struct {
		Articles []models.Article `json:"articles"`
	}
	if err := json.Unmarshal(b, &m); err != nil || len(m.Articles) == 0 {
		var one models.Article
		if err2 := json.Unmarshal(b, &one); err2 != nil || one.Headline == "" {
			h.metrics.RecordError("consumer_unmarshal")
			return err
		}
		m.Articles = []models.Article{one}
	}

	now := time.Now().UTC()
	for i := range m.Articles {
		if m.Articles[i].ID == "" {
			m.Articles[i].ID = models.ArticleID(m.Articles[i].CanonicalURL)
		}
	}

	buckets := h.pipeline.ScoreBatch(m.Articles, nil, now)
	for sym, bucket := range buckets {
		if err := h.publisher.PublishMatches(ctx, sym, bucket); err != nil {
			h.metrics.RecordError("publish_matches")
			return err
		}
	}
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaArticlesHandler)(nil)

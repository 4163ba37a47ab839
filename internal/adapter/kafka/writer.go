package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/anantsinghal-found/natgas-pricevis/internal/config"
	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
	"github.com/anantsinghal-found/natgas-pricevis/internal/observability"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Publisher produces one message per classified region.
// It implements pipeline.RenderSink.
type Publisher struct {
	writer  messageWriter
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewPublisher creates a Kafka producer for the configured sink topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaSinkTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchFlushInterval,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, logger: logger, metrics: metrics}
}

// Name implements pipeline.RenderSink.
func (p *Publisher) Name() string { return "kafka" }

// Deliver publishes every joined record of r in a single WriteMessages call.
func (p *Publisher) Deliver(ctx context.Context, r domain.Render) error {
	if len(r.Records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(r.Records))
	for i := range r.Records {
		msg, err := serializeToMessage(r.Records[i], r.GeneratedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish classifications: %w", err)
	}
	p.metrics.MessagesPublished.Add(float64(len(msgs)))
	p.logger.Debug("classifications published", "count", len(msgs))
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// Classification is the published message body.
type Classification struct {
	domain.JoinedRecord
	GeneratedAt time.Time `json:"generated_at"`
}

// serializeToMessage marshals a classified record into a Kafka message keyed
// by region code.
func serializeToMessage(rec domain.JoinedRecord, generatedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(Classification{JoinedRecord: rec, GeneratedAt: generatedAt})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize classification %s: %w", rec.Region, err)
	}
	return kafkago.Message{
		Key:   []byte(rec.Region),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "category", Value: []byte(rec.Category)},
			{Key: "generated_at", Value: []byte(generatedAt.Format(time.RFC3339))},
		},
	}, nil
}

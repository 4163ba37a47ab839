//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"strconv"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tckafka "github.com/testcontainers/testcontainers-go/modules/kafka"

	"github.com/anantsinghal-found/natgas-pricevis/internal/adapter/kafka"
	"github.com/anantsinghal-found/natgas-pricevis/internal/config"
	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
	"github.com/anantsinghal-found/natgas-pricevis/internal/observability"
	"github.com/anantsinghal-found/natgas-pricevis/internal/pipeline"
)

const testSinkTopic = "test-region-price-classifications"

type staticSource []domain.RawObservation

func (s staticSource) Load(_ context.Context) ([]domain.RawObservation, error) { return s, nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func startKafka(ctx context.Context, t *testing.T) string {
	t.Helper()
	container, err := tckafka.Run(ctx, "confluentinc/confluent-local:7.5.0",
		tckafka.WithClusterID("pricemap-test"),
	)
	require.NoError(t, err, "start kafka container")
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	brokers, err := container.Brokers(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, brokers)
	return brokers[0]
}

func createTopic(t *testing.T, broker, topic string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", broker)
	require.NoError(t, err)
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err)
	ctrl, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	require.NoError(t, err)
	defer ctrl.Close()

	require.NoError(t, ctrl.CreateTopics(kafkago.TopicConfig{
		Topic:             topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	}))
}

// TestPipelinePublishesClassifications runs a full render through the Kafka
// sink and reads every region back from the topic.
func TestPipelinePublishesClassifications(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testSinkTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaSinkTopic:     testSinkTopic,
		BatchSize:          10,
		BatchFlushInterval: 100 * time.Millisecond,
	}
	metrics := observability.NewMetricsForTesting()
	publisher := kafka.NewPublisher(cfg, discardLogger(), metrics)
	t.Cleanup(func() { _ = publisher.Close() })

	sources := pipeline.Sources{
		Gas: staticSource{
			{RegionLabel: "California", Timestamp: "2021-06-01", Value: 10},
			{RegionLabel: "Texas", Timestamp: "2021-06-01", Value: 3},
		},
		Electricity: staticSource{
			{RegionLabel: "California", Value: 12},
			{RegionLabel: "Texas", Value: 9},
		},
	}
	p := pipeline.New(sources, []pipeline.RenderSink{publisher}, pipeline.DefaultOptions(), discardLogger(), metrics)

	r, err := p.Run(ctx, pipeline.Request{Thresholds: domain.DefaultThresholds()})
	require.NoError(t, err)
	require.Len(t, r.Records, 2)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers: []string{broker},
		Topic:   testSinkTopic,
	})
	t.Cleanup(func() { _ = reader.Close() })

	got := make(map[string]kafka.Classification)
	for range r.Records {
		readCtx, readCancel := context.WithTimeout(ctx, 30*time.Second)
		msg, err := reader.ReadMessage(readCtx)
		readCancel()
		require.NoError(t, err, "read from sink topic")

		headers := make(map[string]string, len(msg.Headers))
		for _, h := range msg.Headers {
			headers[h.Key] = string(h.Value)
		}

		var c kafka.Classification
		require.NoError(t, json.Unmarshal(msg.Value, &c))
		assert.Equal(t, string(msg.Key), string(c.Region))
		assert.Equal(t, string(c.Category), headers["category"])
		assert.Equal(t, r.GeneratedAt.Format(time.RFC3339), headers["generated_at"])
		got[string(msg.Key)] = c
	}

	require.Contains(t, got, "CA")
	require.Contains(t, got, "TX")
	assert.Equal(t, domain.CategoryHigh, got["CA"].Category)
	assert.Equal(t, domain.CategoryLow, got["TX"].Category)
}

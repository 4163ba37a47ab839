package kafka

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anantsinghal-found/natgas-pricevis/internal/config"
	"github.com/anantsinghal-found/natgas-pricevis/internal/domain"
	"github.com/anantsinghal-found/natgas-pricevis/internal/observability"
)

type mockWriter struct {
	msgs   []kafkago.Message
	err    error
	closed bool
}

func (m *mockWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msgs...)
	return nil
}

func (m *mockWriter) Close() error {
	m.closed = true
	return nil
}

func newTestPublisher(w messageWriter) *Publisher {
	return &Publisher{
		writer:  w,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		metrics: observability.NewMetricsForTesting(),
	}
}

func caRecord() domain.JoinedRecord {
	return domain.JoinedRecord{
		Region:   "CA",
		Values:   map[domain.Metric]float64{domain.MetricNaturalGas: 39.48, domain.MetricElectricity: 120},
		Category: domain.CategoryHigh,
	}
}

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 4, 26, 15, 10, 0, 0, time.UTC)

	msg, err := serializeToMessage(caRecord(), now)
	require.NoError(t, err)

	assert.Equal(t, []byte("CA"), msg.Key)
	assert.JSONEq(t,
		`{"region":"CA","values":{"natural_gas":39.48,"electricity":120},"category":"High","generated_at":"2026-04-26T15:10:00Z"}`,
		string(msg.Value))
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "category", msg.Headers[0].Key)
	assert.Equal(t, []byte("High"), msg.Headers[0].Value)
	assert.Equal(t, "generated_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_NaN(t *testing.T) {
	rec := caRecord()
	rec.Values[domain.MetricNaturalGas] = math.NaN()

	_, err := serializeToMessage(rec, time.Now())
	assert.Error(t, err)
}

func TestPublisher_Deliver(t *testing.T) {
	w := &mockWriter{}
	p := newTestPublisher(w)
	tx := caRecord()
	tx.Region = "TX"

	err := p.Deliver(context.Background(), domain.Render{Records: []domain.JoinedRecord{caRecord(), tx}})

	require.NoError(t, err)
	require.Len(t, w.msgs, 2)
	assert.Equal(t, []byte("TX"), w.msgs[1].Key)
	assert.Equal(t, "kafka", p.Name())
}

func TestPublisher_Deliver_Empty(t *testing.T) {
	w := &mockWriter{err: errors.New("should not be called")}
	require.NoError(t, newTestPublisher(w).Deliver(context.Background(), domain.Render{}))
}

func TestPublisher_Deliver_WriteError(t *testing.T) {
	w := &mockWriter{err: errors.New("broker down")}

	err := newTestPublisher(w).Deliver(context.Background(), domain.Render{Records: []domain.JoinedRecord{caRecord()}})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestNewPublisher_Config(t *testing.T) {
	cfg := &config.Config{
		KafkaBrokers:       []string{"localhost:9092"},
		KafkaSinkTopic:     "region-price-classifications",
		BatchSize:          25,
		BatchFlushInterval: time.Second,
	}

	p := NewPublisher(cfg, slog.Default(), observability.NewMetricsForTesting())

	w, ok := p.writer.(*kafkago.Writer)
	require.True(t, ok)
	assert.Equal(t, "region-price-classifications", w.Topic)
	assert.Equal(t, 25, w.BatchSize)
	assert.Equal(t, time.Second, w.BatchTimeout)
	require.NoError(t, p.Close())
}

package infra

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// AuditProducer publishes web-log events to Kafka. If brokers is empty or the
// stream is disabled, writes are no-ops so the site runs without Kafka.
type AuditProducer struct {
	writer  *kafka.Writer
	logger  *slog.Logger
	topic   string
	enabled bool
}

// NewAuditProducer creates the audit stream producer.
func NewAuditProducer(brokers, topic string, enabled bool, logger *slog.Logger) *AuditProducer {
	if !enabled || brokers == "" {
		logger.Info("audit producer disabled")
		return &AuditProducer{enabled: false, logger: logger}
	}

	w := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
	}

	logger.Info("audit producer initialized", "brokers", brokers, "topic", topic)
	return &AuditProducer{writer: w, logger: logger, topic: topic, enabled: true}
}

// Publish sends one audit message keyed by operation. No-op if disabled.
func (p *AuditProducer) Publish(ctx context.Context, key, value []byte) error {
	if !p.enabled {
		return nil
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topic,
		Key:   key,
		Value: value,
	})
}

// Close shuts down the Kafka writer.
func (p *AuditProducer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// AuditConsumer tails the audit topic.
type AuditConsumer struct {
	reader *kafka.Reader
}

// NewAuditConsumer creates a consumer for the audit topic in the given group.
func NewAuditConsumer(brokers, topic, groupID string) *AuditConsumer {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  strings.Split(brokers, ","),
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6, // 10MB
	})
	return &AuditConsumer{reader: r}
}

// ReadMessage blocks until the next audit message is available.
func (c *AuditConsumer) ReadMessage(ctx context.Context) (kafka.Message, error) {
	return c.reader.ReadMessage(ctx)
}

// Close shuts down the Kafka reader.
func (c *AuditConsumer) Close() error {
	return c.reader.Close()
}

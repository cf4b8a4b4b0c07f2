package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Shopify/sarama"

	"github.com/polkiloo/webstudio/internal/domain/model"
)

// Publisher delivers outbox events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event model.OrderEvent) error
	Close() error
}

const (
	headerEventType = "event_type"
	headerEventID   = "event_id"
)

var newSyncProducer = sarama.NewSyncProducer

func newProducerConfig() *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = "webstudio"
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Retry.Backoff = 500 * time.Millisecond
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 5 * time.Second
	cfg.Producer.Partitioner = sarama.NewHashPartitioner
	return cfg
}

// SyncPublisher writes events to a Kafka topic keyed by order id, so every
// event of one order lands on the same partition in order.
type SyncPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// Dial connects a sync producer to brokers.
func Dial(brokers []string, topic string, logger *slog.Logger) (*SyncPublisher, error) {
	producer, err := newSyncProducer(brokers, newProducerConfig())
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return NewSyncPublisher(producer, topic, logger), nil
}

func NewSyncPublisher(producer sarama.SyncProducer, topic string, logger *slog.Logger) *SyncPublisher {
	return &SyncPublisher{producer: producer, topic: topic, logger: logger}
}

func (p *SyncPublisher) Publish(ctx context.Context, event model.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(event.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEventType), Value: []byte(event.Type)},
			{Key: []byte(headerEventID), Value: []byte(event.ID)},
		},
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	p.logger.DebugContext(ctx, "order event published",
		slog.String("event_id", event.ID),
		slog.String("topic", p.topic),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
	)
	return nil
}

func (p *SyncPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher records events in the application log. It is used when no
// brokers are configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event model.OrderEvent) error {
	p.logger.InfoContext(ctx, "order event",
		slog.String("event_id", event.ID),
		slog.String("type", string(event.Type)),
		slog.String("order_id", event.OrderID),
		slog.String("payload", string(event.Payload)),
	)
	return nil
}

func (p *LogPublisher) Close() error {
	return nil
}

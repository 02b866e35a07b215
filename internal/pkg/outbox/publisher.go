package outbox

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"

	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// Publisher hands outbox events to the broker.
type Publisher interface {
	Publish(ctx context.Context, events []docstore.OutboxEvent) error
	Close() error
}

// KafkaPublisher writes each event as one message keyed by aggregate ID so
// that events of one aggregate stay ordered within a partition.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			BatchTimeout: 50 * time.Millisecond,
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, events []docstore.OutboxEvent) error {
	msgs := make([]kafka.Message, 0, len(events))
	for _, e := range events {
		msgs = append(msgs, Message(e))
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Message converts an outbox event into its Kafka message.
func Message(e docstore.OutboxEvent) kafka.Message {
	return kafka.Message{
		Key:   []byte(e.AggregateID),
		Value: []byte(e.PayloadJSON),
		Time:  e.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.EventType)},
			{Key: "event_id", Value: []byte(e.EventID)},
		},
	}
}

// LogPublisher logs events instead of publishing them. It stands in when no
// broker is configured.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, events []docstore.OutboxEvent) error {
	for _, e := range events {
		log.Ctx(ctx).Info().
			Str("component", "outbox").
			Str("event_id", e.EventID).
			Str("event_type", e.EventType).
			Str("aggregate_id", e.AggregateID).
			Msg("event relayed to log")
	}
	return nil
}

func (LogPublisher) Close() error { return nil }

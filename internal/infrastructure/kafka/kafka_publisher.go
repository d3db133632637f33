package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jayanth2212/AgriSure/pkg/events"
	pkgkafka "github.com/jayanth2212/AgriSure/pkg/kafka"
)

// MessageWriter is the producer side of pkg/kafka.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Publisher implements port.EventPublisher using Kafka. Messages are keyed by
// aggregate ID so one assessment's events stay ordered.
type Publisher struct {
	producer MessageWriter
	logger   *slog.Logger
	topic    string
}

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(producer MessageWriter, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// Publish sends domain events to Kafka.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(payload)),
		)

		messages = append(messages, message(evt.AggregateID().String(), eventType, evt.EventID().String(), payload))
	}

	return p.send(ctx, messages)
}

// Deliver forwards outbox entries. It has the events.RelayFunc signature.
func (p *Publisher) Deliver(ctx context.Context, entries []events.OutboxEntry) error {
	messages := make([]pkgkafka.Message, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, message(e.AggregateID.String(), e.EventType, e.ID.String(), e.Payload))
	}
	return p.send(ctx, messages)
}

func (p *Publisher) send(ctx context.Context, messages []pkgkafka.Message) error {
	if len(messages) == 0 {
		return nil
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}

func message(key, eventType, eventID string, payload []byte) pkgkafka.Message {
	return pkgkafka.Message{
		Key:   []byte(key),
		Value: payload,
		Headers: map[string]string{
			"event_type": eventType,
			"event_id":   eventID,
		},
	}
}

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Sriniketh-Vangipuram-996/Loan-Management-System/internal/domain/event"
)

// KafkaEventPublisher implements port.EventPublisher by writing domain events
// to a Kafka topic, keyed by aggregate ID so one loan's events stay ordered.
type KafkaEventPublisher struct {
	producer *Producer
	logger   *slog.Logger
}

// NewKafkaEventPublisher creates a publisher over the given producer.
func NewKafkaEventPublisher(producer *Producer, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, logger: logger}
}

// Publish serializes and sends domain events.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	messages := make([]Message, 0, len(events))
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.Debug("publishing domain event",
			"event_type", evt.EventType(),
			"event_id", evt.EventID(),
			"aggregate_id", evt.AggregateID(),
		)

		messages = append(messages, Message{
			Key:   []byte(evt.AggregateID()),
			Value: payload,
			Headers: map[string]string{
				"event_type": evt.EventType(),
				"event_id":   evt.EventID(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}
	return p.producer.Publish(ctx, messages...)
}

// NoopPublisher discards events. It stands in when Kafka is not configured.
type NoopPublisher struct{}

// Publish drops the events.
func (NoopPublisher) Publish(context.Context, ...event.DomainEvent) error { return nil }

package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/churnwatch/risk-service/pkg/events"
	"github.com/churnwatch/risk-service/pkg/kafka"
)

// KafkaPublisher implements port.EventPublisher over the shared Kafka
// producer. Events are wrapped in the standard envelope and keyed by
// aggregate ID so all events of one assessment land in the same partition.
type KafkaPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaPublisher creates a publisher over an existing producer.
func NewKafkaPublisher(producer *kafka.Producer, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, logger: logger}
}

// Publish sends domain events to the events topic.
func (p *KafkaPublisher) Publish(ctx context.Context, evts ...events.DomainEvent) error {
	messages := make([]kafka.Message, 0, len(evts))
	for _, evt := range evts {
		envelope, err := events.Wrap(evt)
		if err != nil {
			return err
		}
		value, err := json.Marshal(envelope)
		if err != nil {
			return fmt.Errorf("marshal envelope for %s: %w", evt.EventType(), err)
		}

		messages = append(messages, kafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: value,
			Headers: map[string]string{
				"event_type": evt.EventType(),
			},
		})

		p.logger.Debug("publishing event",
			slog.String("event_type", evt.EventType()),
			slog.String("aggregate_id", evt.AggregateID().String()),
		)
	}

	return p.producer.Publish(ctx, messages...)
}

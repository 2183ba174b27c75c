package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"staybook/internal/domain/shared/events"
)

// EventPublisher maps recorded domain events to Kafka messages. Topic names
// are "<prefix>.<event group>", e.g. staybook.booking for booking.requested.
type EventPublisher struct {
	Producer    *Producer
	TopicPrefix string
	Logger      *slog.Logger
}

type eventEnvelope struct {
	Name        string          `json:"name"`
	AggregateID string          `json:"aggregate_id"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

func (p *EventPublisher) Publish(ctx context.Context, evts []events.DomainEvent) error {
	for _, event := range evts {
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		envelope, err := json.Marshal(eventEnvelope{
			Name:        event.EventName(),
			AggregateID: event.AggregateID(),
			OccurredAt:  event.OccurredAt(),
			Payload:     payload,
		})
		if err != nil {
			return err
		}
		topic := p.topicFor(event.EventName())
		if err := p.Producer.Publish(ctx, topic, event.AggregateID(), envelope, map[string]string{"event": event.EventName()}); err != nil {
			if p.Logger != nil {
				p.Logger.Error("event publish failed", "event", event.EventName(), "topic", topic, "error", err)
			}
			return err
		}
	}
	return nil
}

func (p *EventPublisher) topicFor(eventName string) string {
	group := eventName
	if idx := strings.IndexByte(eventName, '.'); idx > 0 {
		group = eventName[:idx]
	}
	if p.TopicPrefix == "" {
		return group
	}
	return p.TopicPrefix + "." + group
}

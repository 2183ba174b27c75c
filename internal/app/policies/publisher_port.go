package policies

import (
	"context"

	"staybook/internal/domain/shared/events"
)

// EventPublisher pushes drained domain events to the outside world.
type EventPublisher interface {
	Publish(ctx context.Context, evts []events.DomainEvent) error
}

// NoopPublisher drops events; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, []events.DomainEvent) error { return nil }

package shared

import "context"

// EventHandler consumes domain events delivered by the bus.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes lists the event types the handler wants. Empty means all.
	EventTypes() []string
}

// EventPublisher delivers domain events to subscribed handlers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber manages handler registrations.
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the in-process dispatch surface the outbox processor relays
// into. Start/Stop bracket its background workers.
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// OutboxEventSaver appends domain events to the outbox table inside the
// caller's transaction, so aggregate state and its events commit or roll
// back together. Repositories hold one as an optional collaborator.
type OutboxEventSaver interface {
	// SaveEvents writes the events within txProvider (a *gorm.DB transaction).
	SaveEvents(ctx context.Context, txProvider interface{}, events ...DomainEvent) error
}

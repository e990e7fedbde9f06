package shared

import "context"

// EventHandler consumes domain events. EventTypes declares the types the
// handler wants; an empty slice subscribes it to everything.
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	EventTypes() []string
}

// EventPublisher is the port application services publish through after a
// successful save. Implementations decide whether delivery is synchronous.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventBus is the full in-process bus: publishing, subscription management,
// and a start/stop lifecycle for implementations with background workers.
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler, optionally narrowed to specific event
	// types. Passing no types defers to the handler's own EventTypes.
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)

	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

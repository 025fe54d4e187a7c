// Package events provides the event bus the modules communicate over. A
// publisher never knows who is listening; subscribers register by event name.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event carried on the bus.
type Event interface {
	// EventName identifies the event type, e.g. "leads.lead_received".
	EventName() string
	// OccurredAt returns when the event happened.
	OccurredAt() time.Time
}

// BaseEvent supplies the timestamp; concrete events embed it and add their
// payload plus an EventName method.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

// OccurredAt returns when the event happened.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// NewBaseEvent stamps a base event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler processes events of a specific type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function into a Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls the underlying function.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes domain events and routes them to subscribed handlers.
type Bus interface {
	// Publish delivers the event to every handler subscribed to its name.
	// Handlers run asynchronously; failures are logged, not returned.
	Publish(ctx context.Context, event Event)

	// PublishSync delivers the event inline and returns the first handler
	// error.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for the given EventName value.
	Subscribe(eventName string, handler Handler)
}

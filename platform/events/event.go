// Package events defines the event bus contract used for in-process,
// decoupled communication between bounded contexts. Concrete domain events
// live with the modules that publish them.
package events

import (
	"context"
	"time"
)

// Event is implemented by every domain event.
type Event interface {
	// EventName identifies the event type, e.g. "leads.status.changed".
	EventName() string
	OccurredAt() time.Time
}

// BaseEvent carries the fields shared by all events. Embed it.
type BaseEvent struct {
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent stamps a fresh event with the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{Timestamp: time.Now()}
}

// Handler consumes events of one type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes events to subscribed handlers.
type Bus interface {
	// Publish dispatches asynchronously; the publisher never blocks on
	// slow subscribers.
	Publish(ctx context.Context, event Event)

	// PublishSync dispatches and waits for every handler.
	PublishSync(ctx context.Context, event Event) error

	// Subscribe registers a handler for the name an Event reports from
	// EventName().
	Subscribe(eventName string, handler Handler)
}

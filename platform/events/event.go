// Package events provides the in-process event bus modules use to react to
// each other's state changes without importing one another.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event is implemented by every domain event.
type Event interface {
	// EventName identifies the event type; handlers subscribe by it.
	EventName() string
	OccurredAt() time.Time
}

// Identified events carry an id that is logged when a handler fails.
type Identified interface {
	EventID() uuid.UUID
}

// BaseEvent is embedded by domain events.
type BaseEvent struct {
	ID        uuid.UUID `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

func (e BaseEvent) EventID() uuid.UUID { return e.ID }

// NewBaseEvent stamps a fresh id and the current time.
func NewBaseEvent() BaseEvent {
	return BaseEvent{ID: uuid.New(), Timestamp: time.Now().UTC()}
}

// Handler processes events of one type.
type Handler interface {
	Handle(ctx context.Context, event Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event Event) error

// Handle calls f.
func (f HandlerFunc) Handle(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Bus publishes events to subscribed handlers.
type Bus interface {
	// Publish dispatches asynchronously; handler errors are only logged.
	Publish(ctx context.Context, event Event)
	// PublishSync runs the handlers in order and returns their joined errors.
	PublishSync(ctx context.Context, event Event) error
	Subscribe(eventName string, handler Handler)
}

func eventID(event Event) string {
	if e, ok := event.(Identified); ok {
		return e.EventID().String()
	}
	return ""
}

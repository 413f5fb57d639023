// Package events carries notifications about persisted entity changes from
// the services that make them to whoever wants to observe them, such as the
// audit log.
package events

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Event is a change notification. Entity services publish *EntityEvent;
// the interface exists so handlers can also be fed by other producers,
// like the event command.
type Event interface {
	EventType() string
	EventID() string
	OccurredAt() time.Time
	Payload() interface{}
}

// BaseEvent holds the fields every event shares. Data is what handlers
// that do not know the concrete event type get to see.
type BaseEvent struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }
func (e BaseEvent) Payload() interface{}  { return e.Data }

// Handler reacts to one event. Errors are logged by the bus and never reach
// the service that published the change.
type Handler func(ctx context.Context, event Event) error

// EventBus routes entity events by type ("categories.created" and so on)
// to the handlers subscribed to that type. The row is already committed
// when an event is published, so a failing handler cannot undo it.
type EventBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *slog.Logger
}

func NewEventBus(logger *slog.Logger) *EventBus {
	return &EventBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

func (eb *EventBus) Subscribe(eventType string, handler Handler) {
	eb.mu.Lock()
	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	n := len(eb.handlers[eventType])
	eb.mu.Unlock()

	eb.logger.Debug("subscribed to entity events", "event_type", eventType, "handlers", n)
}

// subscribers returns a snapshot so delivery runs without holding the lock.
func (eb *EventBus) subscribers(eventType string) []Handler {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return append([]Handler(nil), eb.handlers[eventType]...)
}

// Publish hands event to every subscriber on its own goroutine and returns
// at once. Handlers get a context that survives the end of the request
// which caused the change.
func (eb *EventBus) Publish(ctx context.Context, event Event) error {
	handlers := eb.subscribers(event.EventType())
	if len(handlers) == 0 {
		return nil
	}

	eb.logger.Debug("publishing entity event",
		"event_type", event.EventType(),
		"event_id", event.EventID(),
		"handlers", len(handlers))

	detached := context.WithoutCancel(ctx)
	for _, h := range handlers {
		go eb.deliver(detached, h, event)
	}
	return nil
}

// PublishSync delivers event in subscription order on the calling goroutine
// and stops at the first handler error.
func (eb *EventBus) PublishSync(ctx context.Context, event Event) error {
	for _, h := range eb.subscribers(event.EventType()) {
		if err := eb.deliver(ctx, h, event); err != nil {
			return fmt.Errorf("deliver %s: %w", event.EventType(), err)
		}
	}
	return nil
}

func (eb *EventBus) deliver(ctx context.Context, h Handler, event Event) error {
	err := h(ctx, event)
	if err != nil {
		eb.logger.Error("entity event handler failed",
			"event_type", event.EventType(),
			"event_id", event.EventID(),
			"error", err)
	}
	return err
}

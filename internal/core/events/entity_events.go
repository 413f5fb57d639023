package events

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// EntityEvent reports one persisted change to an entity. Its type is
// "<entity>.<action>", e.g. "categories.created".
type EntityEvent struct {
	BaseEvent
	Entity   string `json:"entity"`
	Action   Action `json:"action"`
	EntityID int64  `json:"entity_id"`
}

func EntityEventType(entity string, action Action) string {
	return entity + "." + string(action)
}

func NewEntityEvent(entity string, action Action, entityID int64) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EntityEventType(entity, action),
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"entity":    entity,
				"action":    string(action),
				"entity_id": entityID,
			},
		},
		Entity:   entity,
		Action:   action,
		EntityID: entityID,
	}
}

// Publisher is the part of the bus services depend on.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, Event) error { return nil }

// Discard drops every event.
var Discard Publisher = noopPublisher{}

// AuditLogHandler logs every entity event it receives.
func AuditLogHandler(logger *slog.Logger) Handler {
	return func(ctx context.Context, event Event) error {
		attrs := []any{
			"event_id", event.EventID(),
			"event_type", event.EventType(),
			"occurred_at", event.OccurredAt(),
		}
		if ee, ok := event.(*EntityEvent); ok {
			attrs = append(attrs, "entity", ee.Entity, "action", string(ee.Action), "entity_id", ee.EntityID)
		}
		logger.InfoContext(ctx, "entity changed", attrs...)
		return nil
	}
}

// SubscribeEntity registers handler for every action of each entity.
func (eb *EventBus) SubscribeEntity(handler Handler, entities ...string) {
	for _, entity := range entities {
		for _, action := range []Action{ActionCreated, ActionUpdated, ActionDeleted} {
			eb.Subscribe(EntityEventType(strings.ToLower(entity), action), handler)
		}
	}
}

package events

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Event types emitted after item mutations
const (
	ItemCreated = "item_created"
	ItemUpdated = "item_updated"
	ItemDeleted = "item_deleted"
)

// Event is the change notification sent to the message channel after a
// successful item mutation. The payload is a snapshot of the item's
// current fields; deletions carry an empty payload.
type Event struct {
	EventType  string                 `json:"event_type"`
	ItemID     int64                  `json:"item_id"`
	Payload    map[string]interface{} `json:"payload"`
	OccurredAt time.Time              `json:"occurred_at"`
}

// NewEvent builds an event. A nil payload becomes an empty object.
func NewEvent(eventType string, itemID int64, payload map[string]interface{}) *Event {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	return &Event{
		EventType:  eventType,
		ItemID:     itemID,
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
}

// EventPublisher defines the interface for publishing item change events.
// Delivery is best-effort: a failed publish is reported to the caller, who
// logs it and moves on. The HTTP response never depends on the outcome.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// InMemoryEventPublisher records events instead of sending them. Used as
// the fallback when the broker is unreachable at startup, and in tests.
type InMemoryEventPublisher struct {
	logger *zap.Logger

	mu     sync.Mutex
	events []*Event
}

func NewEventPublisher(logger *zap.Logger) *InMemoryEventPublisher {
	return &InMemoryEventPublisher{
		logger: logger,
		events: make([]*Event, 0),
	}
}

func (p *InMemoryEventPublisher) Publish(ctx context.Context, event *Event) error {
	p.mu.Lock()
	p.events = append(p.events, event)
	p.mu.Unlock()

	p.logger.Info("Event recorded (in-memory)",
		zap.String("event_type", event.EventType),
		zap.Int64("item_id", event.ItemID),
	)
	return nil
}

// Events returns a copy of the recorded events
func (p *InMemoryEventPublisher) Events() []*Event {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*Event, len(p.events))
	copy(out, p.events)
	return out
}

func (p *InMemoryEventPublisher) Close() error {
	return nil
}

package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is implemented by every event an aggregate records.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent carries the envelope fields. Concrete events embed it and add
// their payload fields, so marshalling the concrete event yields the full
// message.
type BaseEvent struct {
	ID            uuid.UUID `json:"event_id"`
	Type          string    `json:"event_type"`
	Aggregate     uuid.UUID `json:"aggregate_id"`
	AggregateKind string    `json:"aggregate_type"`
	Timestamp     time.Time `json:"occurred_at"`
}

func NewBaseEvent(eventType, aggregateType string, aggregateID uuid.UUID) BaseEvent {
	return BaseEvent{
		ID:            uuid.New(),
		Type:          eventType,
		Aggregate:     aggregateID,
		AggregateKind: aggregateType,
		Timestamp:     time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() uuid.UUID     { return e.ID }
func (e BaseEvent) EventType() string      { return e.Type }
func (e BaseEvent) AggregateID() uuid.UUID { return e.Aggregate }
func (e BaseEvent) AggregateType() string  { return e.AggregateKind }
func (e BaseEvent) OccurredAt() time.Time  { return e.Timestamp }

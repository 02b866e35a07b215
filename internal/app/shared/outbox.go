package shared

import (
	"time"

	"github.com/google/uuid"

	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// DomainEvent is implemented by the events of every aggregate.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// EnqueueEvents adds the events to the plan's outbox so they commit together
// with the plan's writes.
func EnqueueEvents(plan *docstore.Plan, now time.Time, events ...DomainEvent) error {
	for _, ev := range events {
		if ev == nil {
			continue
		}
		payload, err := MarshalDomainEventPayload(ev)
		if err != nil {
			return err
		}
		plan.AddEvent(docstore.OutboxEvent{
			EventID:     uuid.New().String(),
			EventType:   ev.EventType(),
			AggregateID: ev.AggregateID(),
			PayloadJSON: payload,
			Status:      docstore.OutboxStatusPending,
			CreatedAt:   now,
		})
	}
	return nil
}

package domain

import "time"

// DomainEvent is a fact about the catalog that is published through the outbox.
type DomainEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// CollectionReconciledEvent is raised when a collection was made to match a working set.
type CollectionReconciledEvent struct {
	Collection   string
	Upserted     int
	Deleted      []string
	Revision     int64
	ReconciledAt time.Time
}

func (e *CollectionReconciledEvent) EventType() string {
	return "catalog.reconciled"
}

func (e *CollectionReconciledEvent) AggregateID() string {
	return e.Collection
}

func (e *CollectionReconciledEvent) OccurredAt() time.Time {
	return e.ReconciledAt
}

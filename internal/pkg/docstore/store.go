package docstore

import (
	"context"
	"time"
)

// Reader reads documents and collection revisions.
type Reader interface {
	Get(ctx context.Context, collection, id string) (*Document, error)
	// List returns every document of collection ordered by ID.
	List(ctx context.Context, collection string) ([]*Document, error)
	ListIDs(ctx context.Context, collection string) ([]string, error)
	// Revision is 0 for a collection that was never written.
	Revision(ctx context.Context, collection string) (int64, error)
}

// Committer applies a Plan atomically: every write lands or none does.
type Committer interface {
	Apply(ctx context.Context, plan *Plan) error
}

// OutboxStore is the relay side of the transactional outbox.
type OutboxStore interface {
	PendingEvents(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkProcessed(ctx context.Context, eventIDs []string, at time.Time) error
}

// Store is a complete document store.
type Store interface {
	Reader
	Committer
	OutboxStore
}

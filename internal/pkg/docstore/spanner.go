package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/murkotick/storefront-service/internal/models/m_document"
	"github.com/murkotick/storefront-service/internal/models/m_outbox"
	"github.com/murkotick/storefront-service/internal/models/m_revision"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
)

// SpannerStore keeps documents as JSON rows of a single table. Every Plan
// runs in one read-write transaction.
type SpannerStore struct {
	client *spanner.Client
	clk    clock.Clock
}

var _ Store = (*SpannerStore)(nil)

func NewSpannerStore(client *spanner.Client, clk clock.Clock) *SpannerStore {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &SpannerStore{client: client, clk: clk}
}

func (s *SpannerStore) Get(ctx context.Context, collection, id string) (*Document, error) {
	row, err := s.client.Single().ReadRow(ctx, m_document.TableName, m_document.Key(collection, id), m_document.Columns)
	if err != nil {
		if isRowNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
		}
		return nil, translate(err)
	}
	return documentFromRow(row)
}

func (s *SpannerStore) List(ctx context.Context, collection string) ([]*Document, error) {
	stmt := spanner.Statement{
		SQL: `SELECT collection, doc_id, fields, updated_at
		      FROM documents
		      WHERE collection = @collection
		      ORDER BY doc_id`,
		Params: map[string]interface{}{"collection": collection},
	}
	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	out := make([]*Document, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, translate(err)
		}
		d, err := documentFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
}

func (s *SpannerStore) ListIDs(ctx context.Context, collection string) ([]string, error) {
	stmt := spanner.Statement{
		SQL:    `SELECT doc_id FROM documents WHERE collection = @collection ORDER BY doc_id`,
		Params: map[string]interface{}{"collection": collection},
	}
	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	ids := make([]string, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return ids, nil
		}
		if err != nil {
			return nil, translate(err)
		}
		var id string
		if err := row.Columns(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
}

func (s *SpannerStore) Revision(ctx context.Context, collection string) (int64, error) {
	row, err := s.client.Single().ReadRow(ctx, m_revision.TableName, m_revision.Key(collection), []string{m_revision.ColRevision})
	if err != nil {
		if isRowNotFound(err) {
			return 0, nil
		}
		return 0, translate(err)
	}
	var rev int64
	if err := row.Columns(&rev); err != nil {
		return 0, err
	}
	return rev, nil
}

func (s *SpannerStore) Apply(ctx context.Context, plan *Plan) error {
	if plan.IsEmpty() {
		return nil
	}
	if s.client == nil {
		return fmt.Errorf("docstore: spanner client is nil")
	}

	_, err := s.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		now := s.clk.Now()

		revisions := map[string]int64{}
		for _, c := range plan.RevisionCollections() {
			rev, err := readRevision(ctx, tx, c)
			if err != nil {
				return err
			}
			revisions[c] = rev
		}
		if err := checkGuards(plan, revisions); err != nil {
			return err
		}

		staged, order, err := resolvePlan(plan, func(k DocKey) (Fields, bool, error) {
			row, err := tx.ReadRow(ctx, m_document.TableName, m_document.Key(k.Collection, k.ID), []string{m_document.ColFields})
			if err != nil {
				if isRowNotFound(err) {
					return nil, false, nil
				}
				return nil, false, err
			}
			var raw spanner.NullJSON
			if err := row.Columns(&raw); err != nil {
				return nil, false, err
			}
			f, err := fieldsFromJSON(raw)
			return f, true, err
		})
		if err != nil {
			return err
		}

		muts := make([]*spanner.Mutation, 0, len(order)+len(revisions)+len(plan.Events()))
		for _, k := range order {
			st := staged[k]
			if !st.exists {
				muts = append(muts, m_document.DeleteMutation(k.Collection, k.ID))
				continue
			}
			values := m_document.BuildReplaceMap(k.Collection, k.ID, st.fields, now)
			muts = append(muts, m_document.ReplaceMutation(values))
		}
		for _, c := range plan.RevisionCollections() {
			muts = append(muts, m_revision.UpsertMutation(c, revisions[c]+1, now))
		}
		for _, e := range plan.Events() {
			createdAt := e.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}
			values := m_outbox.BuildInsertMap(e.EventID, e.EventType, e.AggregateID, e.PayloadJSON, e.Status, createdAt)
			muts = append(muts, m_outbox.InsertMutation(values))
		}
		return tx.BufferWrite(muts)
	})
	return translate(err)
}

func (s *SpannerStore) PendingEvents(ctx context.Context, limit int) ([]OutboxEvent, error) {
	stmt := spanner.Statement{
		SQL: `SELECT event_id, event_type, aggregate_id, payload, status, created_at, processed_at
		      FROM outbox_events
		      WHERE status = @status
		      ORDER BY created_at
		      LIMIT @limit`,
		Params: map[string]interface{}{"status": OutboxStatusPending, "limit": int64(limit)},
	}
	iter := s.client.Single().Query(ctx, stmt)
	defer iter.Stop()

	var out []OutboxEvent
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, translate(err)
		}
		var (
			e           OutboxEvent
			processedAt spanner.NullTime
		)
		if err := row.Columns(&e.EventID, &e.EventType, &e.AggregateID, &e.PayloadJSON, &e.Status, &e.CreatedAt, &processedAt); err != nil {
			return nil, err
		}
		if processedAt.Valid {
			t := processedAt.Time
			e.ProcessedAt = &t
		}
		out = append(out, e)
	}
}

func (s *SpannerStore) MarkProcessed(ctx context.Context, eventIDs []string, at time.Time) error {
	if len(eventIDs) == 0 {
		return nil
	}
	muts := make([]*spanner.Mutation, 0, len(eventIDs))
	for _, id := range eventIDs {
		muts = append(muts, m_outbox.MarkProcessedMutation(id, OutboxStatusProcessed, at))
	}
	_, err := s.client.Apply(ctx, muts)
	return translate(err)
}

func readRevision(ctx context.Context, tx *spanner.ReadWriteTransaction, collection string) (int64, error) {
	row, err := tx.ReadRow(ctx, m_revision.TableName, m_revision.Key(collection), []string{m_revision.ColRevision})
	if err != nil {
		if isRowNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	var rev int64
	if err := row.Columns(&rev); err != nil {
		return 0, err
	}
	return rev, nil
}

func documentFromRow(row *spanner.Row) (*Document, error) {
	var (
		d   Document
		raw spanner.NullJSON
	)
	if err := row.Columns(&d.Collection, &d.ID, &raw, &d.UpdatedAt); err != nil {
		return nil, err
	}
	f, err := fieldsFromJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("docstore: decode %s/%s: %w", d.Collection, d.ID, err)
	}
	d.Fields = f
	return &d, nil
}

// fieldsFromJSON re-decodes a JSON column so numbers come back as float64
// regardless of how the client decoded them.
func fieldsFromJSON(raw spanner.NullJSON) (Fields, error) {
	if !raw.Valid || raw.Value == nil {
		return Fields{}, nil
	}
	b, err := json.Marshal(raw.Value)
	if err != nil {
		return nil, err
	}
	out := Fields{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func isRowNotFound(err error) bool {
	return errors.Is(err, spanner.ErrRowNotFound) || spanner.ErrCode(err) == codes.NotFound
}

// translate maps Spanner status codes onto the store's sentinel errors.
func translate(err error) error {
	if err == nil {
		return nil
	}
	switch spanner.ErrCode(err) {
	case codes.PermissionDenied, codes.Unauthenticated:
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	case codes.Unavailable:
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

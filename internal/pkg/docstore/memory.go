package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/murkotick/storefront-service/internal/pkg/clock"
)

// Memory is an in-process Store. Values are held in their JSON form, so
// reads look exactly like reads from the Spanner store.
type Memory struct {
	mu        sync.Mutex
	clk       clock.Clock
	docs      map[DocKey]*Document
	revisions map[string]int64
	outbox    []OutboxEvent
	failNext  error
	commits   int
}

var _ Store = (*Memory)(nil)

func NewMemory(clk clock.Clock) *Memory {
	if clk == nil {
		clk = clock.RealClock{}
	}
	return &Memory{
		clk:       clk,
		docs:      map[DocKey]*Document{},
		revisions: map[string]int64{},
	}
}

// FailNextCommit makes the next Apply return err without writing anything.
func (m *Memory) FailNextCommit(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failNext = err
}

// Commits counts successful non-empty Apply calls.
func (m *Memory) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

// Seed writes a document directly, bypassing plans and revisions.
func (m *Memory) Seed(collection, id string, f Fields) error {
	norm, err := normalize(f)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[DocKey{collection, id}] = &Document{
		Collection: collection,
		ID:         id,
		Fields:     norm,
		UpdatedAt:  m.clk.Now(),
	}
	return nil
}

func (m *Memory) Get(ctx context.Context, collection, id string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.docs[DocKey{collection, id}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, collection, id)
	}
	return copyDoc(d), nil
}

func (m *Memory) List(ctx context.Context, collection string) ([]*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Document, 0)
	for k, d := range m.docs {
		if k.Collection == collection {
			out = append(out, copyDoc(d))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *Memory) ListIDs(ctx context.Context, collection string) ([]string, error) {
	docs, err := m.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}

func (m *Memory) Revision(ctx context.Context, collection string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.revisions[collection], nil
}

func (m *Memory) Apply(ctx context.Context, plan *Plan) error {
	if plan.IsEmpty() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failNext != nil {
		err := m.failNext
		m.failNext = nil
		return err
	}

	if err := checkGuards(plan, m.revisions); err != nil {
		return err
	}

	staged, order, err := resolvePlan(plan, func(k DocKey) (Fields, bool, error) {
		d, ok := m.docs[k]
		if !ok {
			return nil, false, nil
		}
		return d.Fields.Clone(), true, nil
	})
	if err != nil {
		return err
	}

	for _, e := range plan.Events() {
		for _, existing := range m.outbox {
			if existing.EventID == e.EventID {
				return fmt.Errorf("docstore: duplicate outbox event %s", e.EventID)
			}
		}
	}

	now := m.clk.Now()
	for _, k := range order {
		st := staged[k]
		if !st.exists {
			delete(m.docs, k)
			continue
		}
		m.docs[k] = &Document{Collection: k.Collection, ID: k.ID, Fields: st.fields, UpdatedAt: now}
	}
	for _, c := range plan.RevisionCollections() {
		m.revisions[c]++
	}
	for _, e := range plan.Events() {
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		m.outbox = append(m.outbox, e)
	}
	m.commits++
	return nil
}

func (m *Memory) PendingEvents(ctx context.Context, limit int) ([]OutboxEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []OutboxEvent
	for _, e := range m.outbox {
		if e.Status != OutboxStatusPending {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *Memory) MarkProcessed(ctx context.Context, eventIDs []string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	want := map[string]bool{}
	for _, id := range eventIDs {
		want[id] = true
	}
	for i := range m.outbox {
		if want[m.outbox[i].EventID] {
			ts := at
			m.outbox[i].Status = OutboxStatusProcessed
			m.outbox[i].ProcessedAt = &ts
			delete(want, m.outbox[i].EventID)
		}
	}
	if len(want) > 0 {
		return errors.New("docstore: unknown outbox events")
	}
	return nil
}

// Events returns every outbox event, processed or not.
func (m *Memory) Events() []OutboxEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]OutboxEvent(nil), m.outbox...)
}

func copyDoc(d *Document) *Document {
	return &Document{
		Collection: d.Collection,
		ID:         d.ID,
		Fields:     d.Fields.Clone(),
		UpdatedAt:  d.UpdatedAt,
	}
}

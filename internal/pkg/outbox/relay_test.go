package outbox

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
	"github.com/murkotick/storefront-service/internal/pkg/jobs"
	"github.com/murkotick/storefront-service/internal/pkg/metrics"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakePublisher struct {
	mu        sync.Mutex
	published []docstore.OutboxEvent
	err       error
}

func (p *fakePublisher) Publish(_ context.Context, events []docstore.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, events...)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.published)
}

func commitEvents(t *testing.T, store *docstore.Memory, clk *clock.FakeClock, ids ...string) {
	t.Helper()
	for _, id := range ids {
		plan := docstore.NewPlan()
		plan.AddEvent(docstore.OutboxEvent{EventID: id, EventType: "order.submitted", AggregateID: "agg-" + id, PayloadJSON: `{}`, CreatedAt: clk.Now()})
		require.NoError(t, store.Apply(context.Background(), plan))
		clk.Advance(time.Second)
	}
}

func TestRelay_PublishesInCreationOrder(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk)
	commitEvents(t, store, clk, "e1", "e2", "e3")
	pub := &fakePublisher{}
	m := metrics.New(prometheus.NewRegistry())
	r := NewRelay(store, pub, m, clk, 2)

	n, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	n, err = r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	n, err = r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	require.Len(t, pub.published, 3)
	assert.Equal(t, []string{"e1", "e2", "e3"}, []string{pub.published[0].EventID, pub.published[1].EventID, pub.published[2].EventID})
	assert.Equal(t, 3.0, testutil.ToFloat64(m.OutboxPublished.WithLabelValues("ok")))

	for _, e := range store.Events() {
		assert.Equal(t, docstore.OutboxStatusProcessed, e.Status)
		require.NotNil(t, e.ProcessedAt)
	}
}

func TestRelay_FailureLeavesEventsPendingAndTripsBreaker(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk)
	commitEvents(t, store, clk, "e1")
	pub := &fakePublisher{err: errors.New("broker down")}
	r := NewRelay(store, pub, nil, clk, 10)

	for i := 0; i < 3; i++ {
		_, err := r.RunOnce(context.Background())
		assert.ErrorIs(t, err, pub.err)
	}
	_, err := r.RunOnce(context.Background())
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)

	pending, err := store.PendingEvents(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestRelay_ScheduledRunStopsCleanly(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk)
	commitEvents(t, store, clk, "e1", "e2")
	pub := &fakePublisher{}
	r := NewRelay(store, pub, nil, clk, 0)

	s, err := jobs.New()
	require.NoError(t, err)
	require.NoError(t, s.Every("outbox-relay", 10*time.Millisecond, r.Run))
	s.Start()
	require.Eventually(t, func() bool { return pub.count() == 2 }, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, s.Shutdown())
}

func TestMessage(t *testing.T) {
	at := time.Date(2024, 2, 2, 2, 2, 2, 0, time.UTC)
	msg := Message(docstore.OutboxEvent{EventID: "id-1", EventType: "catalog.reconciled", AggregateID: "videos", PayloadJSON: `{"a":1}`, CreatedAt: at})

	assert.Equal(t, []byte("videos"), msg.Key)
	assert.Equal(t, []byte(`{"a":1}`), msg.Value)
	assert.Equal(t, at, msg.Time)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "event_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("catalog.reconciled"), msg.Headers[0].Value)
}

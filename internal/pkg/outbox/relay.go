package outbox

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"

	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
	"github.com/murkotick/storefront-service/internal/pkg/metrics"
)

const DefaultBatchSize = 100

// Relay publishes pending outbox events and marks them processed. Events
// that fail to publish stay pending for the next run.
type Relay struct {
	store     docstore.OutboxStore
	publisher Publisher
	breaker   *gobreaker.CircuitBreaker[int]
	metrics   *metrics.Metrics
	clock     clock.Clock
	batchSize int
}

func NewRelay(store docstore.OutboxStore, publisher Publisher, m *metrics.Metrics, clk clock.Clock, batchSize int) *Relay {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Relay{
		store:     store,
		publisher: publisher,
		breaker:   NewBreaker("outbox-relay"),
		metrics:   m,
		clock:     clk,
		batchSize: batchSize,
	}
}

// NewBreaker opens after three requests with a failure ratio of 60% or more.
func NewBreaker(name string) *gobreaker.CircuitBreaker[int] {
	var st gobreaker.Settings
	st.Name = name
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= 3 && failureRatio >= 0.6
	}
	st.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn().Str("component", "outbox").Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
	}
	return gobreaker.NewCircuitBreaker[int](st)
}

// RunOnce relays one batch and returns the number of events published.
func (r *Relay) RunOnce(ctx context.Context) (int, error) {
	events, err := r.store.PendingEvents(ctx, r.batchSize)
	if err != nil {
		return 0, fmt.Errorf("read pending events: %w", err)
	}
	r.metrics.SetPending(len(events))
	if len(events) == 0 {
		return 0, nil
	}

	n, err := r.breaker.Execute(func() (int, error) {
		if err := r.publisher.Publish(ctx, events); err != nil {
			return 0, err
		}
		return len(events), nil
	})
	if err != nil {
		r.metrics.ObservePublish(false, len(events))
		return 0, fmt.Errorf("publish %d events: %w", len(events), err)
	}

	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.EventID)
	}
	if err := r.store.MarkProcessed(ctx, ids, r.clock.Now()); err != nil {
		// Published but not marked: the next run publishes them again.
		return 0, fmt.Errorf("mark %d events processed: %w", len(ids), err)
	}
	r.metrics.ObservePublish(true, n)
	r.metrics.SetPending(0)

	log.Ctx(ctx).Debug().Str("component", "outbox").Int("published", n).Msg("outbox batch relayed")
	return n, nil
}

// Run is RunOnce with the count dropped, for the scheduler.
func (r *Relay) Run(ctx context.Context) error {
	_, err := r.RunOnce(ctx)
	return err
}

package reconcile_collection

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contracts "github.com/murkotick/storefront-service/internal/app/catalog/contracts"
	"github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/app/shared"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
	"github.com/murkotick/storefront-service/internal/pkg/metrics"
)

// Request is an operator's working set for one collection, together with the
// revision the working set was loaded at.
type Request struct {
	Collection       string
	Items            []domain.Item
	ExpectedRevision int64
}

type Result struct {
	Upserted int
	Deleted  []string
	// Revision is the token to send with the next save of this collection.
	Revision int64
}

// Interactor makes a remote collection match a working set in one atomic batch.
type Interactor struct {
	ItemRepo   contracts.ItemRepo
	Snapshot   contracts.Snapshotter
	Committer  contracts.Committer
	Categories contracts.CategoryRefresher
	Metrics    *metrics.Metrics
	Clock      clock.Clock
}

func NewInteractor(repo contracts.ItemRepo, snapshot contracts.Snapshotter, committer contracts.Committer, categories contracts.CategoryRefresher, m *metrics.Metrics, clk clock.Clock) *Interactor {
	return &Interactor{
		ItemRepo:   repo,
		Snapshot:   snapshot,
		Committer:  committer,
		Categories: categories,
		Metrics:    m,
		Clock:      clk,
	}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*Result, error) {
	res, err := it.reconcile(ctx, req)
	upserts, deletes := 0, 0
	if res != nil {
		upserts, deletes = res.Upserted, len(res.Deleted)
	}
	it.Metrics.ObserveReconcile(req.Collection, upserts, deletes, err)
	return res, err
}

func (it *Interactor) reconcile(ctx context.Context, req Request) (*Result, error) {
	logger := log.Ctx(ctx).With().Str("component", "catalog").Str("collection", req.Collection).Logger()

	// 1. Validate the working set
	if err := domain.ValidateWorkingSet(req.Collection, req.Items); err != nil {
		return nil, err
	}

	// 2. Fresh snapshot of the remote IDs, never cached
	remoteIDs, err := it.Snapshot.ListIDs(ctx, req.Collection)
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", req.Collection, err)
	}

	// 3. Diff
	diff := domain.Diff(remoteIDs, req.Items)

	// 4. Collect writes, guarded by the working set's revision
	now := it.Clock.Now()
	plan := docstore.NewPlan()
	plan.ExpectRevision(req.Collection, req.ExpectedRevision)
	for _, item := range diff.Upserts {
		plan.Add(it.ItemRepo.UpsertMut(item))
	}
	for _, id := range diff.Deletes {
		plan.Add(it.ItemRepo.DeleteMut(req.Collection, id))
	}

	newRevision := req.ExpectedRevision + 1
	ev := &domain.CollectionReconciledEvent{
		Collection:   req.Collection,
		Upserted:     len(diff.Upserts),
		Deleted:      diff.Deletes,
		Revision:     newRevision,
		ReconciledAt: now,
	}
	if err := shared.EnqueueEvents(plan, now, ev); err != nil {
		return nil, err
	}

	// 5. Apply as one batch
	if err := it.Committer.Apply(ctx, plan); err != nil {
		if errors.Is(err, docstore.ErrRevisionMismatch) {
			return nil, fmt.Errorf("%w: %v", domain.ErrStaleWorkingSet, err)
		}
		return nil, fmt.Errorf("reconcile %s: %w", req.Collection, err)
	}

	logger.Info().
		Int("upserted", len(diff.Upserts)).
		Int("deleted", len(diff.Deletes)).
		Int64("revision", newRevision).
		Msg("collection reconciled")

	// 6. Refresh derived category state; the save itself already succeeded
	if it.Categories != nil {
		if err := it.Categories.Refresh(ctx); err != nil {
			logger.Warn().Err(err).Msg("category refresh after reconcile failed")
		}
	}

	return &Result{
		Upserted: len(diff.Upserts),
		Deleted:  diff.Deletes,
		Revision: newRevision,
	}, nil
}

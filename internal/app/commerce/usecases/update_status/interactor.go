package update_status

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contracts "github.com/murkotick/storefront-service/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-service/internal/app/commerce/domain"
	"github.com/murkotick/storefront-service/internal/app/shared"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// Interactor moves an order or a contact request to a new status.
type Interactor struct {
	Repo      contracts.RecordRepo
	Committer contracts.Committer
	Clock     clock.Clock
}

func NewInteractor(repo contracts.RecordRepo, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{Repo: repo, Committer: committer, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, rec domain.Record, id, status string) error {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return fmt.Errorf("%w: %q", err, status)
	}
	op, err := it.Repo.StatusMut(rec, id, st)
	if err != nil {
		return err
	}

	now := it.Clock.Now()
	plan := docstore.NewPlan()
	plan.Add(op)
	if err := shared.EnqueueEvents(plan, now, &domain.StatusChangedEvent{Record: rec, RecordID: id, Status: st, ChangedAt: now}); err != nil {
		return err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("%w: %s", rec.NotFound(), id)
		}
		return fmt.Errorf("update %s %s: %w", rec, id, err)
	}

	log.Ctx(ctx).Info().
		Str("component", "commerce").
		Str("record", string(rec)).
		Str("id", id).
		Str("status", string(st)).
		Msg("status updated")
	return nil
}

package revoke_subscription

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/murkotick/storefront-service/internal/app/shared"
	contracts "github.com/murkotick/storefront-service/internal/app/subscription/contracts"
	"github.com/murkotick/storefront-service/internal/app/subscription/domain"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// Interactor removes a subscription and the access it granted.
type Interactor struct {
	Repo      contracts.SubscriptionRepo
	ReadModel contracts.ReadModel
	Committer contracts.Committer
	Clock     clock.Clock
}

func NewInteractor(repo contracts.SubscriptionRepo, rm contracts.ReadModel, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{Repo: repo, ReadModel: rm, Committer: committer, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, subscriptionID string) error {
	sub, err := it.ReadModel.Get(ctx, subscriptionID)
	if err != nil {
		return err
	}

	now := it.Clock.Now()
	plan := docstore.NewPlan()
	plan.Add(it.Repo.SetExpiryMut(sub.UserID, domain.RevokedExpiry))
	plan.Add(it.Repo.DeleteMut(sub.ID))
	ev := &domain.SubscriptionRevokedEvent{SubscriptionID: sub.ID, UserID: sub.UserID, RevokedAt: now}
	if err := shared.EnqueueEvents(plan, now, ev); err != nil {
		return err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("revoke subscription %s: %w", sub.ID, err)
	}

	log.Ctx(ctx).Info().Str("component", "subscription").Str("subscription_id", sub.ID).Msg("subscription revoked")
	return nil
}

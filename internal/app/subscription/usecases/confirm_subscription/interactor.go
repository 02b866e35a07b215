package confirm_subscription

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/murkotick/storefront-service/internal/app/shared"
	contracts "github.com/murkotick/storefront-service/internal/app/subscription/contracts"
	"github.com/murkotick/storefront-service/internal/app/subscription/domain"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// Interactor activates a subscription and sets the user's expiry from now.
type Interactor struct {
	Repo      contracts.SubscriptionRepo
	ReadModel contracts.ReadModel
	Committer contracts.Committer
	Clock     clock.Clock
}

func NewInteractor(repo contracts.SubscriptionRepo, rm contracts.ReadModel, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{Repo: repo, ReadModel: rm, Committer: committer, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, subscriptionID string) (*domain.Subscription, error) {
	sub, err := it.ReadModel.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	now := it.Clock.Now()
	if err := sub.Confirm(now); err != nil {
		return nil, err
	}

	plan := docstore.NewPlan()
	plan.Add(it.Repo.SetExpiryMut(sub.UserID, *sub.ExpiryDate))
	plan.Add(it.Repo.ActivateMut(sub))
	ev := &domain.SubscriptionConfirmedEvent{
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		ExpiryDate:     *sub.ExpiryDate,
		ConfirmedAt:    now,
	}
	if err := shared.EnqueueEvents(plan, now, ev); err != nil {
		return nil, err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("confirm subscription %s: %w", sub.ID, err)
	}

	log.Ctx(ctx).Info().
		Str("component", "subscription").
		Str("subscription_id", sub.ID).
		Time("expiry", *sub.ExpiryDate).
		Msg("subscription confirmed")
	return sub, nil
}

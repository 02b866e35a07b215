package sweep_expired

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

// Interactor marks active subscriptions past their expiry as expired.
type Interactor struct {
	Repo      contracts.SubscriptionRepo
	ReadModel contracts.ReadModel
	Committer contracts.Committer
	Clock     clock.Clock
}

func NewInteractor(repo contracts.SubscriptionRepo, rm contracts.ReadModel, committer contracts.Committer, clk clock.Clock) *Interactor {
	return &Interactor{Repo: repo, ReadModel: rm, Committer: committer, Clock: clk}
}

// Execute returns the number of subscriptions it expired.
func (it *Interactor) Execute(ctx context.Context) (int, error) {
	subs, err := it.ReadModel.List(ctx)
	if err != nil {
		return 0, err
	}

	now := it.Clock.Now()
	plan := docstore.NewPlan()
	var events []shared.DomainEvent
	for _, s := range subs {
		if !s.IsLapsed(now) {
			continue
		}
		plan.Add(it.Repo.StatusMut(s.ID, domain.StatusExpired))
		events = append(events, &domain.SubscriptionExpiredEvent{SubscriptionID: s.ID, UserID: s.UserID, ExpiredAt: now})
	}
	if len(events) == 0 {
		return 0, nil
	}
	if err := shared.EnqueueEvents(plan, now, events...); err != nil {
		return 0, err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return 0, fmt.Errorf("sweep expired subscriptions: %w", err)
	}

	log.Ctx(ctx).Info().Str("component", "subscription").Int("expired", len(events)).Msg("expired subscriptions swept")
	return len(events), nil
}

package request_subscription

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	"github.com/murkotick/storefront-service/internal/app/shared"
	contracts "github.com/murkotick/storefront-service/internal/app/subscription/contracts"
	"github.com/murkotick/storefront-service/internal/app/subscription/domain"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

type Request struct {
	Identity      *auth.Identity
	Plan          string
	TransactionID string
}

type Result struct {
	SubscriptionID string
	Amount         int64
	GraceUntil     time.Time
}

// Interactor records a pending subscription and grants temporary access
// while the payment is checked.
type Interactor struct {
	Repo      contracts.SubscriptionRepo
	Plans     contracts.PlanSource
	Committer contracts.Committer
	Notifier  contracts.Notifier
	Clock     clock.Clock
}

func NewInteractor(repo contracts.SubscriptionRepo, plans contracts.PlanSource, committer contracts.Committer, notifier contracts.Notifier, clk clock.Clock) *Interactor {
	return &Interactor{Repo: repo, Plans: plans, Committer: committer, Notifier: notifier, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*Result, error) {
	if req.Identity.IsAnonymous() {
		return nil, domain.ErrAnonymous
	}
	planID, err := settings.ParsePlanID(req.Plan)
	if err != nil {
		return nil, err
	}
	plans, err := it.Plans.Plans(ctx)
	if err != nil {
		return nil, fmt.Errorf("load plans: %w", err)
	}
	offer, ok := plans[planID]
	if !ok {
		return nil, settings.ErrUnknownPlan
	}
	offer.ID = planID

	now := it.Clock.Now()
	sub, err := domain.NewSubscription(req.Identity.UID, req.Identity.Email, offer, req.TransactionID, now)
	if err != nil {
		return nil, err
	}
	grace := domain.GraceExpiry(now)

	plan := docstore.NewPlan()
	plan.Add(it.Repo.CreateMut(sub))
	plan.Add(it.Repo.GrantMut(sub.UserID, grace))
	ev := &domain.SubscriptionRequestedEvent{
		SubscriptionID: sub.ID,
		UserID:         sub.UserID,
		Plan:           string(sub.Plan),
		Amount:         sub.Amount,
		GraceUntil:     grace,
		RequestedAt:    now,
	}
	if err := shared.EnqueueEvents(plan, now, ev); err != nil {
		return nil, err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("request subscription: %w", err)
	}

	logger := log.Ctx(ctx).With().Str("component", "subscription").Str("subscription_id", sub.ID).Logger()
	logger.Info().Str("plan", string(sub.Plan)).Str("user_id", sub.UserID).Msg("subscription requested")

	if it.Notifier != nil {
		body := fmt.Sprintf("User %s (%s) requested plan %s for %d FCFA.\nTransaction: %s",
			sub.UserEmail, sub.UserID, offer.Name, sub.Amount, sub.TransactionID)
		if err := it.Notifier.Notify(ctx, "New subscription request", body); err != nil {
			logger.Warn().Err(err).Msg("subscription notification failed")
		}
	}

	return &Result{SubscriptionID: sub.ID, Amount: sub.Amount, GraceUntil: grace}, nil
}

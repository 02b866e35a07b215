package submit_contact_request

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	contracts "github.com/murkotick/storefront-service/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-service/internal/app/commerce/domain"
	"github.com/murkotick/storefront-service/internal/app/shared"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

type Request struct {
	Name      string
	Firstname string
	Email     string
	Phone     string
	Reason    string
}

// Interactor stores a contact form and tells the back office about it.
type Interactor struct {
	Repo      contracts.RecordRepo
	Committer contracts.Committer
	Notifier  contracts.Notifier
	Clock     clock.Clock
}

func NewInteractor(repo contracts.RecordRepo, committer contracts.Committer, notifier contracts.Notifier, clk clock.Clock) *Interactor {
	return &Interactor{Repo: repo, Committer: committer, Notifier: notifier, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.ContactRequest, error) {
	now := it.Clock.Now()
	c, err := domain.NewContactRequest(req.Name, req.Firstname, req.Email, req.Phone, req.Reason, now)
	if err != nil {
		return nil, err
	}

	plan := docstore.NewPlan()
	plan.Add(it.Repo.CreateContactMut(c))
	if err := shared.EnqueueEvents(plan, now, &domain.ContactSubmittedEvent{RequestID: c.ID, Email: c.Email, SubmittedAt: now}); err != nil {
		return nil, err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("submit contact request: %w", err)
	}

	logger := log.Ctx(ctx).With().Str("component", "commerce").Str("contact_id", c.ID).Logger()
	logger.Info().Msg("contact request submitted")

	if it.Notifier != nil {
		body := fmt.Sprintf("%s %s <%s> %s\n\n%s", c.Firstname, c.Name, c.Email, c.Phone, c.Reason)
		if err := it.Notifier.Notify(ctx, "Nouvelle demande de contact", body); err != nil {
			logger.Warn().Err(err).Msg("contact notification failed")
		}
	}
	return c, nil
}

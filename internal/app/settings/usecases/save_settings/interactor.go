package save_settings

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/murkotick/storefront-service/internal/app/settings/domain"
	"github.com/murkotick/storefront-service/internal/app/shared"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// Request carries the documents to save; nil parts are left untouched.
type Request struct {
	Categories *domain.Categories
	Payment    *domain.PaymentDetails
	Plans      domain.Plans
	About      *domain.About
}

func (r Request) IsEmpty() bool {
	return r.Categories == nil && r.Payment == nil && r.Plans == nil && r.About == nil
}

type SettingsRepo interface {
	CategoriesMut(c domain.Categories) (docstore.Op, error)
	PaymentMut(p domain.PaymentDetails) (docstore.Op, error)
	PlansMut(p domain.Plans) (docstore.Op, error)
	AboutMut(a domain.About) (docstore.Op, error)
}

type Committer interface {
	Apply(ctx context.Context, plan *docstore.Plan) error
}

type CategoryRefresher interface {
	Refresh(ctx context.Context) error
}

// Interactor merge-writes the configuration documents in one batch.
type Interactor struct {
	Repo       SettingsRepo
	Committer  Committer
	Categories CategoryRefresher
	Clock      clock.Clock
}

func NewInteractor(repo SettingsRepo, committer Committer, categories CategoryRefresher, clk clock.Clock) *Interactor {
	return &Interactor{Repo: repo, Committer: committer, Categories: categories, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, req Request) error {
	if req.IsEmpty() {
		return domain.ErrEmptySettings
	}

	plan := docstore.NewPlan()
	var saved []string

	if req.Categories != nil {
		op, err := it.Repo.CategoriesMut(*req.Categories)
		if err != nil {
			return err
		}
		plan.Add(op)
		saved = append(saved, domain.DocCategories)
	}
	if req.Payment != nil {
		if err := req.Payment.Validate(); err != nil {
			return err
		}
		op, err := it.Repo.PaymentMut(*req.Payment)
		if err != nil {
			return err
		}
		plan.Add(op)
		saved = append(saved, domain.DocPayment)
	}
	if req.Plans != nil {
		if err := req.Plans.Validate(); err != nil {
			return err
		}
		op, err := it.Repo.PlansMut(req.Plans)
		if err != nil {
			return err
		}
		plan.Add(op)
		saved = append(saved, domain.DocSubscriptionPlans)
	}
	if req.About != nil {
		op, err := it.Repo.AboutMut(*req.About)
		if err != nil {
			return err
		}
		plan.Add(op)
		saved = append(saved, domain.DocAbout)
	}

	now := it.Clock.Now()
	if err := shared.EnqueueEvents(plan, now, &domain.SettingsSavedEvent{Documents: saved, SavedAt: now}); err != nil {
		return err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	if req.Categories != nil && it.Categories != nil {
		if err := it.Categories.Refresh(ctx); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "settings").Msg("category refresh after save failed")
		}
	}
	return nil
}

package add_feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/murkotick/storefront-service/internal/app/feature/domain"
	"github.com/murkotick/storefront-service/internal/app/shared"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

type FeatureRepo interface {
	AppendFeedbackMut(featureID string, fb domain.Feedback) docstore.Op
}

type Committer interface {
	Apply(ctx context.Context, plan *docstore.Plan) error
}

// Interactor appends a user's feedback to a feature.
type Interactor struct {
	Repo      FeatureRepo
	Committer Committer
	Clock     clock.Clock
}

func NewInteractor(repo FeatureRepo, committer Committer, clk clock.Clock) *Interactor {
	return &Interactor{Repo: repo, Committer: committer, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, featureID string, id *auth.Identity, text string) (*domain.Feedback, error) {
	if id.IsAnonymous() {
		return nil, domain.ErrAnonymous
	}
	now := it.Clock.Now()
	fb, err := domain.NewFeedback(id.UID, id.Email, text, now)
	if err != nil {
		return nil, err
	}

	plan := docstore.NewPlan()
	plan.Add(it.Repo.AppendFeedbackMut(featureID, fb))
	ev := &domain.FeedbackAddedEvent{FeatureID: featureID, FeedbackID: fb.ID, AuthorID: fb.AuthorID, AddedAt: now}
	if err := shared.EnqueueEvents(plan, now, ev); err != nil {
		return nil, err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFeatureNotFound, featureID)
		}
		return nil, fmt.Errorf("add feedback to %s: %w", featureID, err)
	}

	log.Ctx(ctx).Info().Str("component", "feature").Str("feature_id", featureID).Str("feedback_id", fb.ID).Msg("feedback added")
	return &fb, nil
}

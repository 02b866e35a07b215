package reply_to_feedback

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/murkotick/storefront-service/internal/app/feature/domain"
	"github.com/murkotick/storefront-service/internal/app/shared"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

type FeatureRepo interface {
	ReplyMut(featureID, feedbackID string, reply domain.Reply) docstore.Op
}

type FeatureReader interface {
	Get(ctx context.Context, id string) (*domain.Feature, error)
}

type Committer interface {
	Apply(ctx context.Context, plan *docstore.Plan) error
}

// Interactor records the admin's answer to one feedback entry. Replying
// again replaces the previous answer.
type Interactor struct {
	Repo      FeatureRepo
	Features  FeatureReader
	Committer Committer
	Clock     clock.Clock
}

func NewInteractor(repo FeatureRepo, features FeatureReader, committer Committer, clk clock.Clock) *Interactor {
	return &Interactor{Repo: repo, Features: features, Committer: committer, Clock: clk}
}

func (it *Interactor) Execute(ctx context.Context, featureID, feedbackID, text string) (*domain.Reply, error) {
	now := it.Clock.Now()
	reply, err := domain.NewReply(text, now)
	if err != nil {
		return nil, err
	}
	feature, err := it.Features.Get(ctx, featureID)
	if err != nil {
		return nil, err
	}
	if _, ok := feature.FindFeedback(feedbackID); !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFeedbackNotFound, feedbackID)
	}

	plan := docstore.NewPlan()
	plan.Add(it.Repo.ReplyMut(featureID, feedbackID, reply))
	ev := &domain.FeedbackRepliedEvent{FeatureID: featureID, FeedbackID: feedbackID, RepliedAt: now}
	if err := shared.EnqueueEvents(plan, now, ev); err != nil {
		return nil, err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("reply to feedback %s: %w", feedbackID, err)
	}

	log.Ctx(ctx).Info().Str("component", "feature").Str("feature_id", featureID).Str("feedback_id", feedbackID).Msg("feedback answered")
	return &reply, nil
}

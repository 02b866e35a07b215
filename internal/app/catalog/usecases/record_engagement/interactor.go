package record_engagement

import (
	"context"
	"errors"
	"fmt"

	contracts "github.com/murkotick/storefront-service/internal/app/catalog/contracts"
	"github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/app/catalog/repo"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// Interactor records storefront views and likes as atomic counter increments.
// Counters never bump a collection revision.
type Interactor struct {
	ItemRepo  contracts.ItemRepo
	ReadModel contracts.ReadModel
	Access    contracts.AccessChecker
	Committer contracts.Committer
}

func NewInteractor(itemRepo contracts.ItemRepo, rm contracts.ReadModel, access contracts.AccessChecker, committer contracts.Committer) *Interactor {
	return &Interactor{ItemRepo: itemRepo, ReadModel: rm, Access: access, Committer: committer}
}

// CheckAccess reports whether the caller may watch the video.
func (it *Interactor) CheckAccess(ctx context.Context, videoID string, id *auth.Identity) (bool, error) {
	v, err := it.ReadModel.GetVideo(ctx, videoID)
	if err != nil {
		return false, err
	}
	return it.Access.HasAccess(ctx, id, v.IsPaid)
}

// RecordView counts one view of the video. Viewers without access get
// ErrAccessDenied and nothing is counted.
func (it *Interactor) RecordView(ctx context.Context, videoID string, id *auth.Identity) error {
	ok, err := it.CheckAccess(ctx, videoID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAccessDenied
	}
	return it.increment(ctx, domain.CollectionVideos, videoID, repo.FieldViews)
}

func (it *Interactor) LikeVideo(ctx context.Context, videoID string) error {
	return it.increment(ctx, domain.CollectionVideos, videoID, repo.FieldLikes)
}

func (it *Interactor) LikeProduct(ctx context.Context, productID string) error {
	return it.increment(ctx, domain.CollectionProducts, productID, repo.FieldLikes)
}

func (it *Interactor) increment(ctx context.Context, collection, id, field string) error {
	if id == "" {
		return domain.ErrEmptyItemID
	}
	plan := docstore.NewPlan()
	plan.Add(it.ItemRepo.IncrementMut(collection, id, field, 1))
	if err := it.Committer.Apply(ctx, plan); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return fmt.Errorf("%w: %s/%s", domain.ErrItemNotFound, collection, id)
		}
		return fmt.Errorf("increment %s of %s/%s: %w", field, collection, id, err)
	}
	return nil
}

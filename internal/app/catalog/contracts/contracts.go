package contracts

import (
	"context"

	"github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// Committer applies a plan of writes atomically.
type Committer interface {
	Apply(ctx context.Context, plan *docstore.Plan) error
}

// ItemRepo is the write-side repository for catalog items.
// Methods return ops; they do not apply them.
type ItemRepo interface {
	UpsertMut(it domain.Item) docstore.Op
	DeleteMut(collection, id string) docstore.Op
	IncrementMut(collection, id, field string, delta int64) docstore.Op
}

// Snapshotter reads the remote state a reconciliation diffs against.
type Snapshotter interface {
	ListIDs(ctx context.Context, collection string) ([]string, error)
	Revision(ctx context.Context, collection string) (int64, error)
}

// CategoryRefresher reloads category state derived from the catalog.
type CategoryRefresher interface {
	Refresh(ctx context.Context) error
}

// ReadModel serves catalog reads.
type ReadModel interface {
	LoadCollection(ctx context.Context, collection string) ([]domain.Item, int64, error)
	GetItem(ctx context.Context, collection, id string) (domain.Item, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	GetVideo(ctx context.Context, id string) (*domain.Video, error)
	ListProducts(ctx context.Context, kind *domain.Kind) ([]domain.Product, error)
	ListSlides(ctx context.Context) ([]*domain.Slide, error)
	ListVideos(ctx context.Context, channel *string) ([]*domain.Video, error)
}

// AccessChecker decides whether a caller may watch a video.
type AccessChecker interface {
	HasAccess(ctx context.Context, id *auth.Identity, videoIsPaid bool) (bool, error)
}

package contracts

import (
	"context"
	"time"

	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	"github.com/murkotick/storefront-service/internal/app/subscription/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

type Committer interface {
	Apply(ctx context.Context, plan *docstore.Plan) error
}

// SubscriptionRepo is the write-side repository for subscriptions.
// Methods return ops; they do not apply them.
type SubscriptionRepo interface {
	CreateMut(s *domain.Subscription) docstore.Op
	ActivateMut(s *domain.Subscription) docstore.Op
	StatusMut(id string, status domain.Status) docstore.Op
	DeleteMut(id string) docstore.Op
	GrantMut(userID string, until time.Time) docstore.Op
	SetExpiryMut(userID string, expiry time.Time) docstore.Op
}

type ReadModel interface {
	Get(ctx context.Context, id string) (*domain.Subscription, error)
	List(ctx context.Context) ([]*domain.Subscription, error)
}

// PlanSource returns the current subscription offers.
type PlanSource interface {
	Plans(ctx context.Context) (settings.Plans, error)
}

// Notifier delivers back-office notifications.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

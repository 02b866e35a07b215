package contracts

import (
	"context"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/app/commerce/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

type Committer interface {
	Apply(ctx context.Context, plan *docstore.Plan) error
}

// RecordRepo is the write-side repository for orders and contact requests.
// Methods return ops; they do not apply them.
type RecordRepo interface {
	CreateOrderMut(o *domain.Order) docstore.Op
	CreateContactMut(c *domain.ContactRequest) docstore.Op
	StatusMut(rec domain.Record, id string, status domain.Status) (docstore.Op, error)
	DeleteMut(rec domain.Record, id string) (docstore.Op, error)
}

// ProductCatalog resolves cart lines against the stored catalog.
type ProductCatalog interface {
	GetProduct(ctx context.Context, id string) (catalog.Product, error)
}

type RecordsReader interface {
	Exists(ctx context.Context, rec domain.Record, id string) (bool, error)
}

// Notifier delivers back-office notifications.
type Notifier interface {
	Notify(ctx context.Context, subject, body string) error
}

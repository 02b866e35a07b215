package repo

import (
	"github.com/murkotick/storefront-service/internal/app/commerce/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// RecordRepo builds the writes of orders and contact requests.
// It returns ops but never applies them.
type RecordRepo struct{}

func NewRecordRepo() *RecordRepo {
	return &RecordRepo{}
}

func (r *RecordRepo) CreateOrderMut(o *domain.Order) docstore.Op {
	return docstore.Op{Kind: docstore.OpSet, Collection: domain.CollectionOrders, ID: o.ID, Fields: EncodeOrder(o)}
}

func (r *RecordRepo) CreateContactMut(c *domain.ContactRequest) docstore.Op {
	return docstore.Op{Kind: docstore.OpSet, Collection: domain.CollectionContactRequests, ID: c.ID, Fields: EncodeContact(c)}
}

// StatusMut updates the status of an existing record.
func (r *RecordRepo) StatusMut(rec domain.Record, id string, status domain.Status) (docstore.Op, error) {
	coll, err := rec.Collection()
	if err != nil {
		return docstore.Op{}, err
	}
	return docstore.Op{
		Kind:       docstore.OpUpdate,
		Collection: coll,
		ID:         id,
		Fields:     docstore.Fields{FieldStatus: string(status)},
	}, nil
}

func (r *RecordRepo) DeleteMut(rec domain.Record, id string) (docstore.Op, error) {
	coll, err := rec.Collection()
	if err != nil {
		return docstore.Op{}, err
	}
	return docstore.Op{Kind: docstore.OpDelete, Collection: coll, ID: id}, nil
}

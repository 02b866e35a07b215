package repo

import (
	"github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// ItemRepo builds the document-store writes of catalog items.
// It returns ops but never applies them.
type ItemRepo struct{}

func NewItemRepo() *ItemRepo {
	return &ItemRepo{}
}

// UpsertMut replaces the stored document with the item's sanitized fields.
// Storefront counters keep their stored values: they move through
// increments the working set never sees.
func (r *ItemRepo) UpsertMut(it domain.Item) docstore.Op {
	if it == nil {
		return docstore.Op{}
	}
	return docstore.Op{
		Kind:       docstore.OpSet,
		Collection: it.Kind().Collection(),
		ID:         it.ItemID(),
		Fields:     ItemFields(it),
		Keep:       CounterFields(it.Kind()),
	}
}

// CounterFields lists the fields of kind k that only storefront increments write.
func CounterFields(k domain.Kind) []string {
	if k == domain.KindVideo {
		return []string{FieldViews, FieldLikes}
	}
	return []string{FieldLikes}
}

func (r *ItemRepo) DeleteMut(collection, id string) docstore.Op {
	return docstore.Op{Kind: docstore.OpDelete, Collection: collection, ID: id}
}

// IncrementMut adds delta to a counter field (views, likes).
func (r *ItemRepo) IncrementMut(collection, id, field string, delta int64) docstore.Op {
	return docstore.Op{Kind: docstore.OpIncrement, Collection: collection, ID: id, Field: field, Delta: delta}
}

package queries

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/murkotick/storefront-service/internal/app/commerce/domain"
	"github.com/murkotick/storefront-service/internal/app/commerce/repo"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// RecordsReader serves orders and contact requests to the back office.
type RecordsReader struct {
	reader docstore.Reader
}

func NewRecordsReader(reader docstore.Reader) *RecordsReader {
	return &RecordsReader{reader: reader}
}

// ListOrders returns one page of orders, newest first. A limit <= 0 returns
// everything from offset.
func (r *RecordsReader) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	docs, err := r.newestFirst(ctx, domain.CollectionOrders, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, repo.DecodeOrder(d))
	}
	return out, nil
}

func (r *RecordsReader) ListContactRequests(ctx context.Context, limit, offset int) ([]*domain.ContactRequest, error) {
	docs, err := r.newestFirst(ctx, domain.CollectionContactRequests, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.ContactRequest, 0, len(docs))
	for _, d := range docs {
		out = append(out, repo.DecodeContact(d))
	}
	return out, nil
}

func (r *RecordsReader) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	d, err := r.get(ctx, domain.RecordOrder, id)
	if err != nil {
		return nil, err
	}
	return repo.DecodeOrder(d), nil
}

func (r *RecordsReader) GetContactRequest(ctx context.Context, id string) (*domain.ContactRequest, error) {
	d, err := r.get(ctx, domain.RecordContact, id)
	if err != nil {
		return nil, err
	}
	return repo.DecodeContact(d), nil
}

// Exists reports whether the record is stored.
func (r *RecordsReader) Exists(ctx context.Context, rec domain.Record, id string) (bool, error) {
	_, err := r.get(ctx, rec, id)
	if err != nil {
		if errors.Is(err, rec.NotFound()) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *RecordsReader) get(ctx context.Context, rec domain.Record, id string) (*docstore.Document, error) {
	coll, err := rec.Collection()
	if err != nil {
		return nil, err
	}
	d, err := r.reader.Get(ctx, coll, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", rec.NotFound(), id)
		}
		return nil, err
	}
	return d, nil
}

func (r *RecordsReader) newestFirst(ctx context.Context, collection string, limit, offset int) ([]*docstore.Document, error) {
	docs, err := r.reader.List(ctx, collection)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	created := make(map[string]time.Time, len(docs))
	for _, d := range docs {
		t, _ := d.Fields.Time(repo.FieldCreatedAt)
		created[d.ID] = t
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return created[docs[i].ID].After(created[docs[j].ID])
	})

	if offset < 0 {
		offset = 0
	}
	if offset >= len(docs) {
		return nil, nil
	}
	docs = docs[offset:]
	if limit > 0 && limit < len(docs) {
		docs = docs[:limit]
	}
	return docs, nil
}

package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/app/catalog/repo"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// DocstoreReadModel satisfies contracts.ReadModel on top of any document store.
type DocstoreReadModel struct {
	reader docstore.Reader
}

func NewDocstoreReadModel(reader docstore.Reader) *DocstoreReadModel {
	return &DocstoreReadModel{reader: reader}
}

// LoadCollection returns the admin working set of a collection together with
// the revision it was read at. The revision is read first, so a concurrent
// write can only make the token older than the items, never newer.
func (rm *DocstoreReadModel) LoadCollection(ctx context.Context, collection string) ([]domain.Item, int64, error) {
	if !domain.IsCatalogCollection(collection) {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrUnknownCollection, collection)
	}
	rev, err := rm.reader.Revision(ctx, collection)
	if err != nil {
		return nil, 0, fmt.Errorf("read revision of %s: %w", collection, err)
	}
	docs, err := rm.reader.List(ctx, collection)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", collection, err)
	}
	items := make([]domain.Item, 0, len(docs))
	for _, d := range docs {
		it, err := repo.DecodeItem(d)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, rev, nil
}

func (rm *DocstoreReadModel) GetItem(ctx context.Context, collection, id string) (domain.Item, error) {
	d, err := rm.reader.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrItemNotFound, collection, id)
		}
		return nil, err
	}
	return repo.DecodeItem(d)
}

// ListProducts returns every product, optionally only those of one kind.
func (rm *DocstoreReadModel) ListProducts(ctx context.Context, kind *domain.Kind) ([]domain.Product, error) {
	items, _, err := rm.LoadCollection(ctx, domain.CollectionProducts)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(items))
	for _, it := range items {
		p, ok := it.(domain.Product)
		if !ok {
			continue
		}
		if kind != nil && p.Kind() != *kind {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (rm *DocstoreReadModel) ListSlides(ctx context.Context) ([]*domain.Slide, error) {
	items, _, err := rm.LoadCollection(ctx, domain.CollectionSlides)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Slide, 0, len(items))
	for _, it := range items {
		if s, ok := it.(*domain.Slide); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

// ListVideos returns every video, optionally only those of one channel.
func (rm *DocstoreReadModel) ListVideos(ctx context.Context, channel *string) ([]*domain.Video, error) {
	items, _, err := rm.LoadCollection(ctx, domain.CollectionVideos)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Video, 0, len(items))
	for _, it := range items {
		v, ok := it.(*domain.Video)
		if !ok {
			continue
		}
		if channel != nil && v.Channel != *channel {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

// GetVideo is a typed GetItem for the videos collection.
func (rm *DocstoreReadModel) GetVideo(ctx context.Context, id string) (*domain.Video, error) {
	it, err := rm.GetItem(ctx, domain.CollectionVideos, id)
	if err != nil {
		return nil, err
	}
	return it.(*domain.Video), nil
}

// GetProduct is a typed GetItem for the products collection.
func (rm *DocstoreReadModel) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	it, err := rm.GetItem(ctx, domain.CollectionProducts, id)
	if err != nil {
		return nil, err
	}
	return it.(domain.Product), nil
}

package queries

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/murkotick/storefront-service/internal/app/feature/domain"
	"github.com/murkotick/storefront-service/internal/app/feature/repo"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

type FeatureReader struct {
	reader docstore.Reader
}

func NewFeatureReader(reader docstore.Reader) *FeatureReader {
	return &FeatureReader{reader: reader}
}

// List returns every feature, newest first, with admin replies attached.
func (r *FeatureReader) List(ctx context.Context) ([]*domain.Feature, error) {
	docs, err := r.reader.List(ctx, domain.CollectionFeatures)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	replies, err := r.replies(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Feature, 0, len(docs))
	for _, d := range docs {
		out = append(out, repo.DecodeFeature(d, replies))
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *FeatureReader) Get(ctx context.Context, id string) (*domain.Feature, error) {
	d, err := r.reader.Get(ctx, domain.CollectionFeatures, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrFeatureNotFound, id)
		}
		return nil, err
	}
	replies, err := r.replies(ctx)
	if err != nil {
		return nil, err
	}
	return repo.DecodeFeature(d, replies), nil
}

func (r *FeatureReader) replies(ctx context.Context) (map[string]domain.Reply, error) {
	docs, err := r.reader.List(ctx, domain.CollectionReplies)
	if err != nil {
		return nil, fmt.Errorf("list feature replies: %w", err)
	}
	out := make(map[string]domain.Reply, len(docs))
	for _, d := range docs {
		out[d.ID] = repo.DecodeReply(d.Fields)
	}
	return out, nil
}

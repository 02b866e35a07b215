package queries

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/murkotick/storefront-service/internal/app/subscription/domain"
	"github.com/murkotick/storefront-service/internal/app/subscription/repo"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// SubscriptionReader serves subscriptions and user access state.
type SubscriptionReader struct {
	reader docstore.Reader
	clock  clock.Clock
}

func NewSubscriptionReader(reader docstore.Reader, clk clock.Clock) *SubscriptionReader {
	return &SubscriptionReader{reader: reader, clock: clk}
}

func (r *SubscriptionReader) Get(ctx context.Context, id string) (*domain.Subscription, error) {
	doc, err := r.reader.Get(ctx, domain.CollectionSubscriptions, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, domain.ErrSubscriptionNotFound
		}
		return nil, fmt.Errorf("get subscription %s: %w", id, err)
	}
	return repo.Decode(doc)
}

// List returns every subscription, newest first.
func (r *SubscriptionReader) List(ctx context.Context) ([]*domain.Subscription, error) {
	docs, err := r.reader.List(ctx, domain.CollectionSubscriptions)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	out := make([]*domain.Subscription, 0, len(docs))
	for _, d := range docs {
		s, err := repo.Decode(d)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// UserExpiry returns the user's access expiry, nil when none was ever granted.
func (r *SubscriptionReader) UserExpiry(ctx context.Context, userID string) (*time.Time, error) {
	doc, err := r.reader.Get(ctx, domain.CollectionUsers, userID)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user %s: %w", userID, err)
	}
	t, ok := doc.Fields.Time(repo.FieldSubscriptionExpiry)
	if !ok {
		return nil, nil
	}
	return &t, nil
}

// HasAccess reports whether the caller may watch a video with the given
// paid flag. Free videos never touch the store.
func (r *SubscriptionReader) HasAccess(ctx context.Context, id *auth.Identity, videoIsPaid bool) (bool, error) {
	if !videoIsPaid || id.IsAnonymous() {
		return domain.HasAccess(id.IsAnonymous(), videoIsPaid, nil, r.clock.Now()), nil
	}
	expiry, err := r.UserExpiry(ctx, id.UID)
	if err != nil {
		return false, err
	}
	return domain.HasAccess(false, true, expiry, r.clock.Now()), nil
}

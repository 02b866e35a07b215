package record_engagement

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/app/catalog/queries"
	"github.com/murkotick/storefront-service/internal/app/catalog/repo"
	subdomain "github.com/murkotick/storefront-service/internal/app/subscription/domain"
	subqueries "github.com/murkotick/storefront-service/internal/app/subscription/queries"
	subrepo "github.com/murkotick/storefront-service/internal/app/subscription/repo"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

type fixture struct {
	clk   *clock.FakeClock
	store *docstore.Memory
	uc    *Interactor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewFake(time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk)
	uc := NewInteractor(repo.NewItemRepo(), queries.NewDocstoreReadModel(store), subqueries.NewSubscriptionReader(store, clk), store)
	return &fixture{clk: clk, store: store, uc: uc}
}

func (f *fixture) seedVideo(t *testing.T, paid bool) *domain.Video {
	t.Helper()
	v := domain.NewVideo("tv1", f.clk.Now())
	v.IsPaid = paid
	v.Views = 10
	require.NoError(t, f.store.Seed(domain.CollectionVideos, v.ID, repo.ItemFields(v)))
	return v
}

func (f *fixture) counter(t *testing.T, collection, id, field string) int64 {
	t.Helper()
	d, err := f.store.Get(context.Background(), collection, id)
	require.NoError(t, err)
	return d.Fields.Int64(field)
}

func TestRecordView_FreeVideo(t *testing.T) {
	f := newFixture(t)
	v := f.seedVideo(t, false)

	require.NoError(t, f.uc.RecordView(context.Background(), v.ID, nil))
	assert.Equal(t, int64(11), f.counter(t, domain.CollectionVideos, v.ID, repo.FieldViews))
}

func TestRecordView_PaidVideo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.seedVideo(t, true)
	subscriber := &auth.Identity{UID: "sub"}
	lapsed := &auth.Identity{UID: "lapsed"}
	require.NoError(t, f.store.Seed(subdomain.CollectionUsers, "sub", docstore.Fields{
		subrepo.FieldSubscriptionExpiry: f.clk.Now().Add(time.Hour).Format(time.RFC3339Nano),
	}))
	require.NoError(t, f.store.Seed(subdomain.CollectionUsers, "lapsed", docstore.Fields{
		subrepo.FieldSubscriptionExpiry: f.clk.Now().Add(-time.Hour).Format(time.RFC3339Nano),
	}))

	assert.ErrorIs(t, f.uc.RecordView(ctx, v.ID, nil), domain.ErrAccessDenied)
	assert.ErrorIs(t, f.uc.RecordView(ctx, v.ID, lapsed), domain.ErrAccessDenied)
	assert.ErrorIs(t, f.uc.RecordView(ctx, v.ID, &auth.Identity{UID: "never"}), domain.ErrAccessDenied)
	assert.Equal(t, int64(10), f.counter(t, domain.CollectionVideos, v.ID, repo.FieldViews))

	require.NoError(t, f.uc.RecordView(ctx, v.ID, subscriber))
	assert.Equal(t, int64(11), f.counter(t, domain.CollectionVideos, v.ID, repo.FieldViews))

	ok, err := f.uc.CheckAccess(ctx, v.ID, subscriber)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLikes_DoNotBumpRevision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	v := f.seedVideo(t, true)
	p := domain.NewShopProduct("mode")
	require.NoError(t, f.store.Seed(domain.CollectionProducts, p.ID, repo.ItemFields(p)))

	require.NoError(t, f.uc.LikeVideo(ctx, v.ID))
	require.NoError(t, f.uc.LikeVideo(ctx, v.ID))
	require.NoError(t, f.uc.LikeProduct(ctx, p.ID))

	assert.Equal(t, int64(2), f.counter(t, domain.CollectionVideos, v.ID, repo.FieldLikes))
	assert.Equal(t, int64(1), f.counter(t, domain.CollectionProducts, p.ID, repo.FieldLikes))

	rev, err := f.store.Revision(ctx, domain.CollectionVideos)
	require.NoError(t, err)
	assert.Zero(t, rev)
}

func TestEngagement_UnknownItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	assert.ErrorIs(t, f.uc.LikeProduct(ctx, "missing"), domain.ErrItemNotFound)
	assert.ErrorIs(t, f.uc.RecordView(ctx, "missing", nil), domain.ErrItemNotFound)
	assert.ErrorIs(t, f.uc.LikeVideo(ctx, ""), domain.ErrEmptyItemID)
}

package confirm_subscription

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	"github.com/murkotick/storefront-service/internal/app/subscription/domain"
	"github.com/murkotick/storefront-service/internal/app/subscription/queries"
	"github.com/murkotick/storefront-service/internal/app/subscription/repo"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

func seedPending(t *testing.T, store *docstore.Memory, plan settings.PlanID, at time.Time) *domain.Subscription {
	t.Helper()
	s, err := domain.NewSubscription("bob", "bob@example.com", settings.Plan{ID: plan, Price: 1000}, "TX", at)
	require.NoError(t, err)
	require.NoError(t, store.Seed(domain.CollectionSubscriptions, s.ID, repo.Encode(s)))
	return s
}

func TestExecute_ActivatesAndSetsExpiry(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk)
	reader := queries.NewSubscriptionReader(store, clk)
	uc := NewInteractor(repo.NewSubscriptionRepo(), reader, store, clk)
	ctx := context.Background()

	pending := seedPending(t, store, settings.Plan1w, clk.Now())
	clk.Advance(2 * time.Hour)

	sub, err := uc.Execute(ctx, pending.ID)
	require.NoError(t, err)
	want := clk.Now().AddDate(0, 0, 7)
	assert.Equal(t, want, *sub.ExpiryDate)

	stored, err := reader.Get(ctx, pending.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, stored.Status)
	require.NotNil(t, stored.StartDate)
	assert.Equal(t, clk.Now(), *stored.StartDate)
	assert.Equal(t, want, *stored.ExpiryDate)
	assert.Equal(t, "TX", stored.TransactionID, "confirmation keeps the request fields")

	expiry, err := reader.UserExpiry(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, expiry)
	assert.Equal(t, want, *expiry)

	_, err = uc.Execute(ctx, pending.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyActive)
}

func TestExecute_UnknownSubscription(t *testing.T) {
	clk := clock.NewFake(time.Now())
	store := docstore.NewMemory(clk)
	uc := NewInteractor(repo.NewSubscriptionRepo(), queries.NewSubscriptionReader(store, clk), store, clk)

	_, err := uc.Execute(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
	assert.Equal(t, 0, store.Commits())
}

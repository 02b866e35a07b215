package add_feedback

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/feature/domain"
	"github.com/murkotick/storefront-service/internal/app/feature/queries"
	"github.com/murkotick/storefront-service/internal/app/feature/repo"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

func TestExecute(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk)
	require.NoError(t, store.Seed(domain.CollectionFeatures, "dark-mode", docstore.Fields{
		repo.FieldTitle:     "Mode sombre",
		repo.FieldCreatedAt: clk.Now().Add(-time.Hour).Format(time.RFC3339Nano),
	}))
	uc := NewInteractor(repo.NewFeatureRepo(), store, clk)
	ctx := context.Background()
	user := &auth.Identity{UID: "u1", Email: "u1@example.com"}

	first, err := uc.Execute(ctx, "dark-mode", user, "  Enfin !  ")
	require.NoError(t, err)
	_, err = uc.Execute(ctx, "dark-mode", user, "Merci")
	require.NoError(t, err)

	f, err := queries.NewFeatureReader(store).Get(ctx, "dark-mode")
	require.NoError(t, err)
	require.Len(t, f.Feedback, 2)
	assert.Equal(t, first.ID, f.Feedback[0].ID)
	assert.Equal(t, "Enfin !", f.Feedback[0].Text)
	assert.Equal(t, "u1@example.com", f.Feedback[0].AuthorEmail)
	assert.Equal(t, clk.Now(), f.Feedback[0].CreatedAt)

	rev, err := store.Revision(ctx, domain.CollectionFeatures)
	require.NoError(t, err)
	assert.Zero(t, rev, "feedback does not bump the revision")

	_, err = uc.Execute(ctx, "dark-mode", nil, "hello")
	assert.ErrorIs(t, err, domain.ErrAnonymous)
	_, err = uc.Execute(ctx, "dark-mode", user, "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyText)
	_, err = uc.Execute(ctx, "missing", user, "hello")
	assert.ErrorIs(t, err, domain.ErrFeatureNotFound)
}

package wire

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	feature "github.com/murkotick/storefront-service/internal/app/feature/domain"
)

func TestItemRoundTrip(t *testing.T) {
	shop := catalog.NewShopProduct("col-1")
	shop.Price = 12000
	shop.Colors = []string{"rouge", "bleu"}

	m := Item(shop)
	assert.Equal(t, shop.ID, m["id"])
	assert.Equal(t, "shop", m["kind"])
	assert.Equal(t, float64(12000), m["price"])
	assert.Equal(t, []any{"rouge", "bleu"}, m["colors"])

	back, err := DecodeItem(catalog.CollectionProducts, m)
	require.NoError(t, err)
	got, ok := back.(*catalog.ShopProduct)
	require.True(t, ok)
	assert.Equal(t, shop.ID, got.ID)
	assert.Equal(t, int64(12000), got.Price)
	assert.Equal(t, []string{"rouge", "bleu"}, got.Colors)
}

func TestDecodeItemRequiresID(t *testing.T) {
	_, err := DecodeItem(catalog.CollectionSlides, map[string]any{"title": "x"})
	assert.ErrorIs(t, err, catalog.ErrEmptyItemID)

	_, err = DecodeItem("nope", map[string]any{"id": "a"})
	assert.ErrorIs(t, err, catalog.ErrUnknownCollection)
}

func TestFeatureIncludesReplies(t *testing.T) {
	at := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	f := &feature.Feature{
		ID:    "f1",
		Title: "Mode hors ligne",
		Feedback: []feature.Feedback{
			{ID: "fb1", AuthorID: "u1", Text: "Oui", CreatedAt: at, AdminReply: &feature.Reply{Text: "Prévu", CreatedAt: at}},
			{ID: "fb2", AuthorID: "u2", Text: "Merci", CreatedAt: at},
		},
	}
	m := Feature(f)
	assert.Equal(t, "f1", m["id"])
	entries, ok := m["feedback"].([]any)
	require.True(t, ok)
	require.Len(t, entries, 2)
	first := entries[0].(map[string]any)
	assert.Equal(t, map[string]any{"text": "Prévu", "createdAt": "2024-03-01T10:00:00Z"}, first["adminReply"])
	assert.NotContains(t, entries[1].(map[string]any), "adminReply")
}

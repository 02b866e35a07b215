package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

func TestInferKind(t *testing.T) {
	cases := []struct {
		name   string
		fields docstore.Fields
		want   domain.Kind
	}{
		{"explicit tag wins", docstore.Fields{FieldKind: "internet", FieldCollection: "c"}, domain.KindInternet},
		{"collection means shop", docstore.Fields{FieldCollection: "c"}, domain.KindShop},
		{"internet class means internet", docstore.Fields{FieldInternetClass: "fibre"}, domain.KindInternet},
		{"otherwise article", docstore.Fields{FieldArticleCategory: "news"}, domain.KindArticle},
		{"bare document is an article", docstore.Fields{}, domain.KindArticle},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := InferKind(tc.fields)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := InferKind(docstore.Fields{FieldKind: "video"})
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestItemFields_Shop(t *testing.T) {
	p := domain.NewShopProduct("sneakers")
	p.Price = 15000
	orig := int64(20000)
	p.OriginalPrice = &orig
	p.Colors = []string{"red"}

	f := ItemFields(p)

	assert.Equal(t, "shop", f[FieldKind])
	assert.Equal(t, "sneakers", f[FieldCollection])
	assert.Equal(t, int64(15000), f[FieldPrice])
	assert.Equal(t, int64(20000), f[FieldOriginalPrice])
	assert.Equal(t, []string{"red"}, f[FieldColors])
	assert.NotContains(t, f, FieldSizes)
	assert.NotContains(t, f, FieldCreatedAt)
	assert.NotContains(t, f, FieldArticleCategory)
}

func TestDecodeItem_LegacyShopDocument(t *testing.T) {
	d := &docstore.Document{
		Collection: domain.CollectionProducts,
		ID:         "p1",
		Fields: docstore.Fields{
			FieldTitle:      "Tee",
			FieldPrice:      float64(5000),
			FieldCollection: "tees",
			FieldSizes:      []any{"M", "L"},
			FieldMediaURLs:  []any{"https://cdn/x.jpg"},
		},
	}
	it, err := DecodeItem(d)
	require.NoError(t, err)

	shop, ok := it.(*domain.ShopProduct)
	require.True(t, ok)
	assert.Equal(t, "p1", shop.ID)
	assert.Equal(t, int64(5000), shop.Price)
	assert.Equal(t, "tees", shop.Collection)
	assert.Equal(t, []string{"M", "L"}, shop.Sizes)
	assert.Nil(t, shop.OriginalPrice)
}

func TestDecodeItem_VideoRoundTrip(t *testing.T) {
	created := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	dur := int64(42)
	v := domain.NewVideo("tv1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	v.IsPaid = true
	v.Views = 7
	v.Duration = &dur
	v.CreatedAt = &created

	d := &docstore.Document{Collection: domain.CollectionVideos, ID: v.ID, Fields: ItemFields(v).Clone()}
	it, err := DecodeItem(d)
	require.NoError(t, err)
	assert.Equal(t, v, it)
}

func TestDecodeItem_UnknownCollection(t *testing.T) {
	_, err := DecodeItem(&docstore.Document{Collection: "orders", ID: "x"})
	assert.ErrorIs(t, err, domain.ErrUnknownCollection)
}

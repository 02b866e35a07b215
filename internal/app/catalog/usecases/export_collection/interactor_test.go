package export_collection

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/app/catalog/queries"
	"github.com/murkotick/storefront-service/internal/app/catalog/repo"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

func TestExecute_WritesEveryItem(t *testing.T) {
	clk := clock.NewFake(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk)

	v := domain.NewVideo("tv1", clk.Now())
	v.ID = "v1"
	v.Title = "Match"
	v.Views = 42
	v.IsPaid = true
	w := domain.NewVideo("tv2", clk.Now())
	w.ID = "v2"
	for _, it := range []domain.Item{v, w} {
		require.NoError(t, store.Seed(domain.CollectionVideos, it.ItemID(), repo.ItemFields(it)))
	}

	var buf bytes.Buffer
	n, err := NewInteractor(queries.NewDocstoreReadModel(store)).Execute(context.Background(), domain.CollectionVideos, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	rows, err := parquet.Read[Row](bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "v1", rows[0].ID)
	assert.Equal(t, "video", rows[0].Kind)
	assert.Equal(t, "Match", rows[0].Title)
	assert.Equal(t, int64(42), rows[0].Views)
	assert.True(t, rows[0].IsPaid)
	assert.Contains(t, rows[0].Document, `"channel":"tv1"`)
	assert.Equal(t, "tv2", rows[1].Channel)
}

func TestExecute_UnknownCollection(t *testing.T) {
	store := docstore.NewMemory(clock.NewFake(time.Now()))
	var buf bytes.Buffer
	_, err := NewInteractor(queries.NewDocstoreReadModel(store)).Execute(context.Background(), "orders", &buf)
	assert.ErrorIs(t, err, domain.ErrUnknownCollection)
	assert.Zero(t, buf.Len())
}

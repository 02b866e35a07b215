package submit_order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	catalogqueries "github.com/murkotick/storefront-service/internal/app/catalog/queries"
	catalogrepo "github.com/murkotick/storefront-service/internal/app/catalog/repo"
	"github.com/murkotick/storefront-service/internal/app/commerce/domain"
	"github.com/murkotick/storefront-service/internal/app/commerce/queries"
	"github.com/murkotick/storefront-service/internal/app/commerce/repo"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

type recordingNotifier struct {
	bodies []string
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, _, body string) error {
	n.bodies = append(n.bodies, body)
	return n.err
}

type fixture struct {
	store    *docstore.Memory
	notifier *recordingNotifier
	records  *queries.RecordsReader
	uc       *Interactor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewFake(time.Date(2024, 8, 1, 15, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk)

	a := catalog.NewArticle("news")
	a.ID, a.Title, a.Price = "art", "Guide", 3000
	s := catalog.NewShopProduct("mode")
	s.ID, s.Title, s.Price = "tee", "T-shirt", 8000
	for _, p := range []catalog.Item{a, s} {
		require.NoError(t, store.Seed(catalog.CollectionProducts, p.ItemID(), catalogrepo.ItemFields(p)))
	}

	notifier := &recordingNotifier{}
	return &fixture{
		store:    store,
		notifier: notifier,
		records:  queries.NewRecordsReader(store),
		uc:       NewInteractor(repo.NewRecordRepo(), catalogqueries.NewDocstoreReadModel(store), store, notifier, clk),
	}
}

var (
	buyer    = &auth.Identity{UID: "u1", Email: "awa@example.com"}
	customer = domain.Customer{Name: "Awa", Email: "awa@example.com", Phone: "770000000", TransactionID: "OM-1"}
)

func TestQuote(t *testing.T) {
	f := newFixture(t)

	q, err := f.uc.Quote(context.Background(), []Line{{ProductID: "art"}, {ProductID: "art"}})
	require.NoError(t, err)
	assert.Len(t, q.Lines, 1)
	assert.Equal(t, int64(3000), q.FinalTotal)

	q, err = f.uc.Quote(context.Background(), []Line{{ProductID: "art"}, {ProductID: "tee"}})
	require.NoError(t, err)
	assert.Equal(t, int64(11000), q.Total)
	assert.Equal(t, int64(5000), q.DeliveryFee)
	assert.Equal(t, int64(16000), q.FinalTotal)
}

func TestExecute_StoresPendingOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	order, err := f.uc.Execute(ctx, Request{
		Identity: buyer,
		Customer: customer,
		Lines:    []Line{{ProductID: "tee", SelectedColor: "noir", SelectedSize: "L"}, {ProductID: "art"}},
	})
	require.NoError(t, err)

	stored, err := f.records.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, int64(16000), stored.TotalAmount)
	assert.Equal(t, customer.TransactionID, stored.Customer.TransactionID)
	require.Len(t, stored.Items, 2)
	assert.Equal(t, "mode", stored.Items[0].Collection)
	assert.Equal(t, "noir", stored.Items[0].SelectedColor)
	assert.Equal(t, int64(8000), stored.Items[0].Price)

	doc, err := f.store.Get(ctx, domain.CollectionOrders, order.ID)
	require.NoError(t, err)
	assert.NotContains(t, doc.Fields, repo.FieldCustomerNotes, "empty notes are not stored")
	item := doc.Fields.Maps(repo.FieldItems)[1]
	assert.NotContains(t, item, "collection")
	assert.NotContains(t, item, "selectedColor")

	require.Len(t, f.store.Events(), 1)
	assert.Equal(t, "order.submitted", f.store.Events()[0].EventType)
	require.Len(t, f.notifier.bodies, 1)
	assert.Contains(t, f.notifier.bodies[0], "Total: 16000 FCFA")
}

func TestExecute_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Execute(ctx, Request{Customer: customer, Lines: []Line{{ProductID: "art"}}})
	assert.ErrorIs(t, err, domain.ErrAnonymousCheckout)

	_, err = f.uc.Execute(ctx, Request{Identity: buyer, Customer: customer})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)

	_, err = f.uc.Execute(ctx, Request{Identity: buyer, Customer: customer, Lines: []Line{{ProductID: "ghost"}}})
	assert.ErrorIs(t, err, domain.ErrUnknownProduct)

	noPhone := customer
	noPhone.Phone = ""
	_, err = f.uc.Execute(ctx, Request{Identity: buyer, Customer: noPhone, Lines: []Line{{ProductID: "art"}}})
	assert.ErrorIs(t, err, domain.ErrMissingField)

	assert.Equal(t, 0, f.store.Commits())
	assert.Empty(t, f.notifier.bodies)
}

func TestExecute_NotificationFailureKeepsOrder(t *testing.T) {
	f := newFixture(t)
	f.notifier.err = errors.New("smtp down")

	order, err := f.uc.Execute(context.Background(), Request{Identity: buyer, Customer: customer, Lines: []Line{{ProductID: "art"}}})
	require.NoError(t, err)

	ok, err := f.records.Exists(context.Background(), domain.RecordOrder, order.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

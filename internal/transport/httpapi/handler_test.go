package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	catalogrepo "github.com/murkotick/storefront-service/internal/app/catalog/repo"
	feature "github.com/murkotick/storefront-service/internal/app/feature/domain"
	featurerepo "github.com/murkotick/storefront-service/internal/app/feature/repo"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
	"github.com/murkotick/storefront-service/internal/pkg/storage"
	"github.com/murkotick/storefront-service/internal/transport/httpapi"
	"github.com/murkotick/storefront-service/internal/wiring"
)

const testSecret = "test-secret"

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type fakeSynth struct{}

func (fakeSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	return []byte{0x01, 0x02, 0x03, 0x04}, nil
}

type fixture struct {
	e     *echo.Echo
	store *docstore.Memory
	clk   *clock.FakeClock
}

func newFixture(t *testing.T, tweak func(*wiring.Deps)) *fixture {
	t.Helper()
	clk := clock.NewFake(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	store := docstore.NewMemory(clk)

	seedItem(t, store, &catalog.ShopProduct{
		ProductInfo: catalog.ProductInfo{ID: "p-shop", Title: "T-shirt", Price: 10000},
		Collection:  "vetements",
		Colors:      []string{"noir"},
	})
	seedItem(t, store, &catalog.Article{
		ProductInfo:     catalog.ProductInfo{ID: "p-article", Title: "Guide", Price: 2000},
		ArticleCategory: "web",
	})
	seedItem(t, store, &catalog.Video{ID: "v-free", Title: "Free", Channel: "action", UploadDate: clk.Now()})
	seedItem(t, store, &catalog.Video{ID: "v-paid", Title: "Paid", Channel: "action", UploadDate: clk.Now(), IsPaid: true})
	require.NoError(t, store.Seed(feature.CollectionFeatures, "f1", featurerepo.EncodeFeature(&feature.Feature{
		ID: "f1", Title: "Dark mode", CreatedAt: clk.Now(),
	})))

	deps := wiring.Deps{Store: store, Clock: clk}
	if tweak != nil {
		tweak(&deps)
	}
	app := wiring.Build(deps)
	e := httpapi.New(app.HTTP, httpapi.Options{Verifier: auth.NewVerifier(testSecret, []string{"boss@example.com"})})
	return &fixture{e: e, store: store, clk: clk}
}

func seedItem(t *testing.T, store *docstore.Memory, it catalog.Item) {
	t.Helper()
	require.NoError(t, store.Seed(it.Kind().Collection(), it.ItemID(), catalogrepo.ItemFields(it)))
}

func token(t *testing.T, uid, email string) string {
	t.Helper()
	tok, err := auth.Mint(testSecret, auth.Identity{UID: uid, Email: email}, time.Hour, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok
}

func (f *fixture) do(t *testing.T, method, path string, body any, tok string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, tok)
	}
	return f.serve(t, req)
}

func (f *fixture) serve(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	}
	return rec, env
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, nil)
	rec, env := f.do(t, http.MethodGet, "/healthz", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)
	assert.NotEmpty(t, rec.Header().Get(httpapi.HeaderRequestID))
}

func TestListProducts(t *testing.T) {
	f := newFixture(t, nil)

	rec, env := f.do(t, http.MethodGet, "/api/products", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &all))
	assert.Len(t, all, 2)

	rec, env = f.do(t, http.MethodGet, "/api/products?kind=shop", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var shop []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &shop))
	require.Len(t, shop, 1)
	assert.Equal(t, "p-shop", shop[0]["id"])
	assert.Equal(t, "vetements", shop[0]["collection"])

	rec, env = f.do(t, http.MethodGet, "/api/products?kind=slide", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "error", env.Status)
}

func TestInvalidTokenIsRejectedOnProtectedRoutes(t *testing.T) {
	f := newFixture(t, nil)
	rec, _ := f.do(t, http.MethodPost, "/api/orders", map[string]any{}, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStaleTokenStillReadsPublicCatalog(t *testing.T) {
	f := newFixture(t, nil)
	tok, err := auth.Mint(testSecret, auth.Identity{UID: "u1"}, time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)
	stale := "Bearer " + tok

	rec, env := f.do(t, http.MethodGet, "/api/products", nil, stale)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "success", env.Status)

	rec, _ = f.do(t, http.MethodGet, "/api/slides", nil, "Bearer not-a-jwt")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = f.do(t, http.MethodPost, "/api/orders", map[string]any{}, stale)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, auth.ErrExpiredToken.Error(), env.Message)
}

func TestLikeProduct(t *testing.T) {
	f := newFixture(t, nil)
	rec, _ := f.do(t, http.MethodPost, "/api/products/p-shop/likes", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	doc, err := f.store.Get(context.Background(), catalog.CollectionProducts, "p-shop")
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc.Fields.Int64(catalogrepo.FieldLikes))

	rec, _ = f.do(t, http.MethodPost, "/api/products/missing/likes", nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuoteCart(t *testing.T) {
	f := newFixture(t, nil)
	rec, env := f.do(t, http.MethodPost, "/api/cart/quote", map[string]any{
		"items": []map[string]any{{"id": "p-shop", "selectedColor": "noir"}, {"id": "p-article"}},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var q httpapi.QuoteResponse
	require.NoError(t, json.Unmarshal(env.Data, &q))
	assert.EqualValues(t, 12000, q.Total)
	assert.EqualValues(t, 5000, q.DeliveryFee)
	assert.EqualValues(t, 17000, q.FinalTotal)
	assert.Len(t, q.Items, 2)
}

func TestSubmitOrder(t *testing.T) {
	f := newFixture(t, nil)
	order := map[string]any{
		"items":         []map[string]any{{"id": "p-shop", "selectedSize": "M"}},
		"customerName":  "Awa",
		"customerEmail": "awa@example.com",
		"customerPhone": "0102030405",
		"transactionId": "OM-1",
	}

	rec, _ := f.do(t, http.MethodPost, "/api/orders", order, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := f.do(t, http.MethodPost, "/api/orders", order, token(t, "u1", "awa@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Commande enregistrée", env.Message)

	var got map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, "pending", got["status"])
	assert.EqualValues(t, 15000, got["totalAmount"])
	assert.Equal(t, "u1", got["userId"])

	docs, err := f.store.List(context.Background(), "orders")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
	assert.Len(t, f.store.Events(), 1)

	order["items"] = []map[string]any{{"id": "ghost"}}
	rec, _ = f.do(t, http.MethodPost, "/api/orders", order, token(t, "u1", "awa@example.com"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubmitContact(t *testing.T) {
	f := newFixture(t, nil)

	rec, _ := f.do(t, http.MethodPost, "/api/contracts", map[string]any{"name": "Kone"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := f.do(t, http.MethodPost, "/api/contracts", map[string]any{
		"name":      "Kone",
		"firstname": "Ali",
		"email":     "ali@example.com",
		"phone":     "0700000000",
		"reason":    "Partenariat",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Demande envoyée", env.Message)

	docs, err := f.store.List(context.Background(), "contracts")
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestPaidVideoAccess(t *testing.T) {
	f := newFixture(t, nil)
	user := token(t, "u1", "awa@example.com")

	access := func(tok string) bool {
		rec, env := f.do(t, http.MethodGet, "/api/videos/v-paid/access", nil, tok)
		require.Equal(t, http.StatusOK, rec.Code)
		var a httpapi.AccessResponse
		require.NoError(t, json.Unmarshal(env.Data, &a))
		return a.HasAccess
	}

	assert.False(t, access(""))
	assert.False(t, access(user))

	rec, _ := f.do(t, http.MethodPost, "/api/videos/v-paid/views", nil, user)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/videos/v-free/views", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/subscriptions", map[string]any{"plan": "24h", "transactionId": "OM-2"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := f.do(t, http.MethodPost, "/api/subscriptions", map[string]any{"plan": "24h", "transactionId": "OM-2"}, user)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sub httpapi.SubscriptionResponse
	require.NoError(t, json.Unmarshal(env.Data, &sub))
	assert.EqualValues(t, 1000, sub.Amount)
	assert.True(t, sub.GraceUntil.After(f.clk.Now()))

	assert.True(t, access(user))
	rec, _ = f.do(t, http.MethodPost, "/api/videos/v-paid/views", nil, user)
	assert.Equal(t, http.StatusOK, rec.Code)

	doc, err := f.store.Get(context.Background(), catalog.CollectionVideos, "v-paid")
	require.NoError(t, err)
	assert.EqualValues(t, 1, doc.Fields.Int64(catalogrepo.FieldViews))

	rec, _ = f.do(t, http.MethodPost, "/api/subscriptions", map[string]any{"plan": "1y", "transactionId": "OM-3"}, user)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSettingsFallBackToDefaults(t *testing.T) {
	f := newFixture(t, nil)

	rec, env := f.do(t, http.MethodGet, "/api/subscription-plans", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var plans map[string]map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &plans))
	assert.Len(t, plans, 3)
	assert.EqualValues(t, 1000, plans["24h"]["price"])

	rec, _ = f.do(t, http.MethodGet, "/api/payment", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = f.do(t, http.MethodGet, "/api/config/categories", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = f.do(t, http.MethodGet, "/api/about", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFeedback(t *testing.T) {
	f := newFixture(t, nil)
	user := token(t, "u1", "awa@example.com")

	rec, _ := f.do(t, http.MethodPost, "/api/features/f1/feedback", map[string]any{"text": "Oui !"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/features/f1/feedback", map[string]any{"text": "  "}, user)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/features/f1/feedback", map[string]any{"text": "Oui !"}, user)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := f.do(t, http.MethodGet, "/api/features", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	fb, ok := list[0]["feedback"].([]any)
	require.True(t, ok)
	assert.Len(t, fb, 1)
}

func TestUpload(t *testing.T) {
	dir := t.TempDir()
	f := newFixture(t, func(d *wiring.Deps) {
		objects, err := storage.NewLocalStore(dir, "http://cdn.test/")
		require.NoError(t, err)
		d.Objects = objects
	})

	newReq := func(tok string) *http.Request {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		part, err := w.CreateFormFile("file", "notes de cours.txt")
		require.NoError(t, err)
		_, err = part.Write([]byte("hello"))
		require.NoError(t, err)
		require.NoError(t, w.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/upload", &body)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		if tok != "" {
			req.Header.Set(echo.HeaderAuthorization, tok)
		}
		return req
	}

	rec, _ := f.serve(t, newReq(""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.serve(t, newReq(token(t, "u1", "awa@example.com")))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, env := f.serve(t, newReq(token(t, "admin", "boss@example.com")))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var res map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, strings.HasPrefix(res["url"], "http://cdn.test/uploads/"), res["url"])
	assert.True(t, strings.HasSuffix(res["url"], "-notes_de_cours.txt"), res["url"])
	assert.Empty(t, res["thumbnailUrl"])
}

func TestOptionalBackendsReportNotConfigured(t *testing.T) {
	f := newFixture(t, nil)

	rec, _ := f.do(t, http.MethodPost, "/api/tts", map[string]any{"text": "Bonjour"}, "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	rec, _ = f.do(t, http.MethodPost, "/api/upload", nil, token(t, "admin", "boss@example.com"))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTextToSpeech(t *testing.T) {
	f := newFixture(t, func(d *wiring.Deps) { d.Synthesizer = fakeSynth{} })

	rec, env := f.do(t, http.MethodPost, "/api/tts", map[string]any{"text": "Bonjour"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res httpapi.SpeechResponse
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.True(t, strings.HasPrefix(res.AudioURL, "data:audio/wav;base64,"))

	rec, _ = f.do(t, http.MethodPost, "/api/tts", map[string]any{"text": ""}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRequestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	store := docstore.NewMemory(clock.NewFake(time.Now()))
	app := wiring.Build(wiring.Deps{Store: store})
	e := httpapi.New(app.HTTP, httpapi.Options{Verifier: auth.NewVerifier(testSecret, nil), Registerer: reg})

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	rec := httptest.NewRecorder()
	httpapi.NewMetricsServer(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "storefront_requests_total")
}

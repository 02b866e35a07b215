package httpapi

import (
	"context"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	commerce "github.com/murkotick/storefront-service/internal/app/commerce/domain"
	"github.com/murkotick/storefront-service/internal/app/commerce/usecases/submit_contact_request"
	"github.com/murkotick/storefront-service/internal/app/commerce/usecases/submit_order"
	feature "github.com/murkotick/storefront-service/internal/app/feature/domain"
	media "github.com/murkotick/storefront-service/internal/app/media/domain"
	"github.com/murkotick/storefront-service/internal/app/media/usecases/upload_file"
	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	"github.com/murkotick/storefront-service/internal/app/subscription/usecases/request_subscription"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/transport/wire"
)

type CatalogReader interface {
	ListProducts(ctx context.Context, kind *catalog.Kind) ([]catalog.Product, error)
	ListSlides(ctx context.Context) ([]*catalog.Slide, error)
	ListVideos(ctx context.Context, channel *string) ([]*catalog.Video, error)
	GetVideo(ctx context.Context, id string) (*catalog.Video, error)
}

type Engagement interface {
	CheckAccess(ctx context.Context, videoID string, id *auth.Identity) (bool, error)
	RecordView(ctx context.Context, videoID string, id *auth.Identity) error
	LikeVideo(ctx context.Context, videoID string) error
	LikeProduct(ctx context.Context, productID string) error
}

type SettingsReader interface {
	Payment(ctx context.Context) (settings.PaymentDetails, error)
	Plans(ctx context.Context) (settings.Plans, error)
	About(ctx context.Context) (settings.About, error)
}

type CategorySource interface {
	Get(ctx context.Context) (settings.Categories, error)
}

type FeatureLister interface {
	List(ctx context.Context) ([]*feature.Feature, error)
}

type FeedbackAdder interface {
	Execute(ctx context.Context, featureID string, id *auth.Identity, text string) (*feature.Feedback, error)
}

type OrderSubmitter interface {
	Quote(ctx context.Context, lines []submit_order.Line) (*submit_order.Quote, error)
	Execute(ctx context.Context, req submit_order.Request) (*commerce.Order, error)
}

type ContactSubmitter interface {
	Execute(ctx context.Context, req submit_contact_request.Request) (*commerce.ContactRequest, error)
}

type SubscriptionRequester interface {
	Execute(ctx context.Context, req request_subscription.Request) (*request_subscription.Result, error)
}

type Uploader interface {
	Execute(ctx context.Context, req upload_file.Request) (*upload_file.Result, error)
}

type Speaker interface {
	Execute(ctx context.Context, text string) (string, error)
}

// Handler serves the public storefront API. Uploads and Speech may be nil
// when the server runs without those backends.
type Handler struct {
	Catalog       CatalogReader
	Engagement    Engagement
	Settings      SettingsReader
	Categories    CategorySource
	Features      FeatureLister
	Feedback      FeedbackAdder
	Orders        OrderSubmitter
	Contacts      ContactSubmitter
	Subscriptions SubscriptionRequester
	Uploads       Uploader
	Speech        Speaker
}

// Register mounts the API under /api. Every route sees the caller's
// identity when a valid bearer token is sent.
func (h *Handler) Register(e *echo.Echo, verifier *auth.Verifier) {
	g := e.Group("/api", Authenticate(verifier))

	g.GET("/products", h.ListProducts)
	g.POST("/products/:id/likes", h.LikeProduct)
	g.GET("/slides", h.ListSlides)
	g.GET("/videos", h.ListVideos)
	g.GET("/videos/:id", h.GetVideo)
	g.GET("/videos/:id/access", h.VideoAccess)
	g.POST("/videos/:id/views", h.RecordView)
	g.POST("/videos/:id/likes", h.LikeVideo)

	g.GET("/config/categories", h.GetCategories)
	g.GET("/payment", h.GetPayment)
	g.GET("/subscription-plans", h.GetPlans)
	g.GET("/about", h.GetAbout)

	g.GET("/features", h.ListFeatures)
	g.POST("/features/:id/feedback", h.AddFeedback, RequireUser)

	g.POST("/cart/quote", h.QuoteCart)
	g.POST("/orders", h.SubmitOrder, RequireUser)
	g.POST("/contracts", h.SubmitContact)
	g.POST("/subscriptions", h.RequestSubscription, RequireUser)

	g.POST("/upload", h.Upload, RequireAdmin)
	g.POST("/tts", h.TextToSpeech)
}

func bind(c echo.Context, v any) error {
	if err := c.Bind(v); err != nil {
		log.Ctx(c.Request().Context()).Debug().Err(err).Str("component", "http").Msg("bind failed")
		return fmt.Errorf("%w: malformed body", ErrBadRequest)
	}
	return nil
}

func identity(c echo.Context) *auth.Identity {
	return auth.FromContext(c.Request().Context())
}

func (h *Handler) ListProducts(c echo.Context) error {
	var kind *catalog.Kind
	if raw := c.QueryParam("kind"); raw != "" {
		k, err := catalog.ParseKind(raw)
		if err != nil || !k.IsProduct() {
			return WriteErrorResponse(c, fmt.Errorf("%w: %q", catalog.ErrUnknownKind, raw), nil)
		}
		kind = &k
	}
	products, err := h.Catalog.ListProducts(c.Request().Context(), kind)
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", wire.Items(products))
}

func (h *Handler) LikeProduct(c echo.Context) error {
	if err := h.Engagement.LikeProduct(c.Request().Context(), c.Param("id")); err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", nil)
}

func (h *Handler) ListSlides(c echo.Context) error {
	slides, err := h.Catalog.ListSlides(c.Request().Context())
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", wire.Items(slides))
}

func (h *Handler) ListVideos(c echo.Context) error {
	var channel *string
	if ch := c.QueryParam("channel"); ch != "" {
		channel = &ch
	}
	videos, err := h.Catalog.ListVideos(c.Request().Context(), channel)
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", wire.Items(videos))
}

func (h *Handler) GetVideo(c echo.Context) error {
	v, err := h.Catalog.GetVideo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", wire.Item(v))
}

func (h *Handler) VideoAccess(c echo.Context) error {
	ok, err := h.Engagement.CheckAccess(c.Request().Context(), c.Param("id"), identity(c))
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", AccessResponse{HasAccess: ok})
}

func (h *Handler) RecordView(c echo.Context) error {
	if err := h.Engagement.RecordView(c.Request().Context(), c.Param("id"), identity(c)); err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", nil)
}

func (h *Handler) LikeVideo(c echo.Context) error {
	if err := h.Engagement.LikeVideo(c.Request().Context(), c.Param("id")); err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", nil)
}

func (h *Handler) GetCategories(c echo.Context) error {
	cats, err := h.Categories.Get(c.Request().Context())
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", cats)
}

func (h *Handler) GetPayment(c echo.Context) error {
	p, err := h.Settings.Payment(c.Request().Context())
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", p)
}

func (h *Handler) GetPlans(c echo.Context) error {
	p, err := h.Settings.Plans(c.Request().Context())
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", p)
}

func (h *Handler) GetAbout(c echo.Context) error {
	a, err := h.Settings.About(c.Request().Context())
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", a)
}

func (h *Handler) ListFeatures(c echo.Context) error {
	list, err := h.Features.List(c.Request().Context())
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", wire.Features(list))
}

func (h *Handler) AddFeedback(c echo.Context) error {
	var req FeedbackRequest
	if err := bind(c, &req); err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	fb, err := h.Feedback.Execute(c.Request().Context(), c.Param("id"), identity(c), req.Text)
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteCreatedResponse(c, "", map[string]any{
		"id":        fb.ID,
		"text":      fb.Text,
		"createdAt": fb.CreatedAt,
	})
}

func (h *Handler) QuoteCart(c echo.Context) error {
	var req CartRequest
	if err := bind(c, &req); err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	q, err := h.Orders.Quote(c.Request().Context(), req.lines())
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", toQuoteResponse(q))
}

func (h *Handler) SubmitOrder(c echo.Context) error {
	var req OrderRequest
	if err := bind(c, &req); err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	o, err := h.Orders.Execute(c.Request().Context(), submit_order.Request{
		Identity: identity(c),
		Customer: commerce.Customer{
			Name:          req.CustomerName,
			Email:         req.CustomerEmail,
			Phone:         req.CustomerPhone,
			TransactionID: req.TransactionID,
			Notes:         req.CustomerNotes,
		},
		Lines: req.lines(),
	})
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteCreatedResponse(c, "Commande enregistrée", wire.Order(o))
}

func (h *Handler) SubmitContact(c echo.Context) error {
	var req ContactRequest
	if err := bind(c, &req); err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	cr, err := h.Contacts.Execute(c.Request().Context(), submit_contact_request.Request{
		Name:      req.Name,
		Firstname: req.Firstname,
		Email:     req.Email,
		Phone:     req.Phone,
		Reason:    req.Reason,
	})
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteCreatedResponse(c, "Demande envoyée", wire.Contact(cr))
}

func (h *Handler) RequestSubscription(c echo.Context) error {
	var req SubscriptionRequest
	if err := bind(c, &req); err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	res, err := h.Subscriptions.Execute(c.Request().Context(), request_subscription.Request{
		Identity:      identity(c),
		Plan:          req.Plan,
		TransactionID: req.TransactionID,
	})
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteCreatedResponse(c, "", SubscriptionResponse{
		SubscriptionID: res.SubscriptionID,
		Amount:         res.Amount,
		GraceUntil:     res.GraceUntil,
	})
}

func (h *Handler) Upload(c echo.Context) error {
	if h.Uploads == nil {
		return WriteErrorResponse(c, ErrNotConfigured, nil)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return WriteErrorResponse(c, media.ErrNoFile, nil)
	}
	f, err := fh.Open()
	if err != nil {
		return WriteErrorResponse(c, fmt.Errorf("open upload: %w", err), nil)
	}
	defer f.Close()

	res, err := h.Uploads.Execute(c.Request().Context(), upload_file.Request{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(echo.HeaderContentType),
		Body:        f,
	})
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteCreatedResponse(c, "", res)
}

func (h *Handler) TextToSpeech(c echo.Context) error {
	if h.Speech == nil {
		return WriteErrorResponse(c, ErrNotConfigured, nil)
	}
	var req SpeechRequest
	if err := bind(c, &req); err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	url, err := h.Speech.Execute(c.Request().Context(), req.Text)
	if err != nil {
		return WriteErrorResponse(c, err, nil)
	}
	return WriteSuccessResponse(c, "", SpeechResponse{AudioURL: url})
}

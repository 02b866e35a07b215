package httpapi

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/murkotick/storefront-service/internal/pkg/auth"
)

const maxBodySize = "32M"

type Options struct {
	Verifier *auth.Verifier
	// Registerer receives the request metrics. Nil skips them.
	Registerer prometheus.Registerer
	// UploadDir is served under /uploads when set.
	UploadDir string
}

// New builds the public echo server with h's routes.
func New(h *Handler, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.BodyLimit(maxBodySize))
	if opts.Registerer != nil {
		e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem:  "storefront",
			Registerer: opts.Registerer,
		}))
	}
	e.Use(Logger)
	e.Use(middleware.CORS())

	e.GET("/healthz", func(c echo.Context) error {
		return WriteSuccessResponse(c, "ok", nil)
	})
	if opts.UploadDir != "" {
		e.Static("/uploads", opts.UploadDir)
	}
	h.Register(e, opts.Verifier)
	return e
}

// Traced wraps the server in an otelhttp handler that names spans by route.
func Traced(e *echo.Echo) http.Handler {
	return otelhttp.NewHandler(e, "storefront-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

// NewMetricsServer exposes gatherer on /metrics.
func NewMetricsServer(gatherer prometheus.Gatherer) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	return e
}

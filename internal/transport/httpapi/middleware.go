package httpapi

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/murkotick/storefront-service/internal/pkg/auth"
)

const HeaderRequestID = "X-Request-Id"

// Logger attaches a request-scoped logger with a request_id and logs every
// request once it completes.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		requestID := c.Request().Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Response().Header().Set(HeaderRequestID, requestID)

		logger := log.With().Str("request_id", requestID).Logger()
		ctx := logger.WithContext(c.Request().Context())
		c.SetRequest(c.Request().WithContext(ctx))

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		req := c.Request()
		res := c.Response()
		log.Ctx(req.Context()).Info().
			Str("method", req.Method).
			Str("endpoint", req.URL.Path).
			Int("status", res.Status).
			Int64("latency", time.Since(start).Milliseconds()).
			Msg("Request processed")

		return nil
	}
}

// ctxAuthError holds the verification failure of a rejected bearer token.
const ctxAuthError = "auth_error"

// Authenticate resolves the bearer token, when present, into an Identity on
// the request context. Requests without a usable token continue anonymously;
// RequireUser and RequireAdmin report why the token was refused.
func Authenticate(v *auth.Verifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}
			id, err := v.Verify(header)
			if err != nil {
				log.Ctx(c.Request().Context()).Debug().Err(err).Msg("bearer token ignored")
				c.Set(ctxAuthError, err)
				return next(c)
			}
			ctx := auth.WithIdentity(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// anonymousError is the refusal returned to an anonymous caller of a
// protected route.
func anonymousError(c echo.Context) error {
	if err, ok := c.Get(ctxAuthError).(error); ok {
		return err
	}
	return auth.ErrMissingToken
}

func RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if auth.FromContext(c.Request().Context()).IsAnonymous() {
			return WriteErrorResponse(c, anonymousError(c), nil)
		}
		return next(c)
	}
}

func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := auth.FromContext(c.Request().Context())
		if id.IsAnonymous() {
			return WriteErrorResponse(c, anonymousError(c), nil)
		}
		if !id.IsAdmin() {
			return WriteErrorResponse(c, auth.ErrNotAdmin, nil)
		}
		return next(c)
	}
}

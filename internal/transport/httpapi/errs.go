package httpapi

import (
	"context"
	"errors"
	"net/http"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	commerce "github.com/murkotick/storefront-service/internal/app/commerce/domain"
	feature "github.com/murkotick/storefront-service/internal/app/feature/domain"
	media "github.com/murkotick/storefront-service/internal/app/media/domain"
	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	subscription "github.com/murkotick/storefront-service/internal/app/subscription/domain"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

var (
	ErrInternalServer = errors.New("Internal server error")
	ErrBadRequest     = errors.New("Bad request")
	ErrNotConfigured  = errors.New("Feature is not configured on this server")
)

var errorStatus = []struct {
	err    error
	status int
}{
	{ErrBadRequest, http.StatusBadRequest},
	{catalog.ErrEmptyItemID, http.StatusBadRequest},
	{catalog.ErrUnknownKind, http.StatusBadRequest},
	{catalog.ErrUnknownCollection, http.StatusBadRequest},
	{commerce.ErrEmptyCart, http.StatusBadRequest},
	{commerce.ErrUnknownProduct, http.StatusBadRequest},
	{commerce.ErrMissingField, http.StatusBadRequest},
	{subscription.ErrEmptyTransactionID, http.StatusBadRequest},
	{settings.ErrUnknownPlan, http.StatusBadRequest},
	{feature.ErrEmptyText, http.StatusBadRequest},
	{media.ErrNoFile, http.StatusBadRequest},
	{media.ErrEmptyText, http.StatusBadRequest},

	{auth.ErrMissingToken, http.StatusUnauthorized},
	{auth.ErrInvalidToken, http.StatusUnauthorized},
	{auth.ErrExpiredToken, http.StatusUnauthorized},
	{commerce.ErrAnonymousCheckout, http.StatusUnauthorized},
	{subscription.ErrAnonymous, http.StatusUnauthorized},
	{feature.ErrAnonymous, http.StatusUnauthorized},

	{auth.ErrNotAdmin, http.StatusForbidden},
	{catalog.ErrAccessDenied, http.StatusForbidden},
	{docstore.ErrPermissionDenied, http.StatusForbidden},

	{catalog.ErrItemNotFound, http.StatusNotFound},
	{feature.ErrFeatureNotFound, http.StatusNotFound},
	{feature.ErrFeedbackNotFound, http.StatusNotFound},
	{docstore.ErrNotFound, http.StatusNotFound},

	{catalog.ErrStaleWorkingSet, http.StatusConflict},
	{docstore.ErrRevisionMismatch, http.StatusConflict},

	{docstore.ErrUnavailable, http.StatusServiceUnavailable},
	{ErrNotConfigured, http.StatusServiceUnavailable},
	{context.DeadlineExceeded, http.StatusGatewayTimeout},
}

// StatusCode maps err to an HTTP status; unknown errors are 500.
func StatusCode(err error) int {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

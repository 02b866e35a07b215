package admin

import (
	"context"
	"errors"

	"github.com/sony/gobreaker/v2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	commerce "github.com/murkotick/storefront-service/internal/app/commerce/domain"
	feature "github.com/murkotick/storefront-service/internal/app/feature/domain"
	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	subscription "github.com/murkotick/storefront-service/internal/app/subscription/domain"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// mapError translates domain sentinel errors into gRPC status codes.
// Unknown errors become codes.Internal.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := status.FromError(err); ok {
		return err
	}

	if errors.Is(err, context.Canceled) {
		return status.Error(codes.Canceled, err.Error())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return status.Error(codes.DeadlineExceeded, err.Error())
	}

	// Not found
	switch {
	case errors.Is(err, catalog.ErrItemNotFound),
		errors.Is(err, commerce.ErrOrderNotFound),
		errors.Is(err, commerce.ErrContactRequestNotFound),
		errors.Is(err, subscription.ErrSubscriptionNotFound),
		errors.Is(err, feature.ErrFeatureNotFound),
		errors.Is(err, feature.ErrFeedbackNotFound),
		errors.Is(err, docstore.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	}

	// Invalid argument (validation)
	switch {
	case errors.Is(err, errInvalidRequest),
		errors.Is(err, catalog.ErrEmptyItemID),
		errors.Is(err, catalog.ErrDuplicateItemID),
		errors.Is(err, catalog.ErrItemCollectionMismatch),
		errors.Is(err, catalog.ErrUnknownCollection),
		errors.Is(err, catalog.ErrUnknownKind),
		errors.Is(err, catalog.ErrNegativePrice),
		errors.Is(err, commerce.ErrUnknownStatus),
		errors.Is(err, commerce.ErrUnknownRecord),
		errors.Is(err, settings.ErrUnknownPlan),
		errors.Is(err, settings.ErrNegativePlanPrice),
		errors.Is(err, settings.ErrTooManyPaymentMethods),
		errors.Is(err, settings.ErrEmptySettings),
		errors.Is(err, settings.ErrUnknownCategoryList),
		errors.Is(err, feature.ErrEmptyText),
		errors.Is(err, docstore.ErrUndefinedField):
		return status.Error(codes.InvalidArgument, err.Error())
	}

	// Failed precondition (state)
	if errors.Is(err, subscription.ErrAlreadyActive) {
		return status.Error(codes.FailedPrecondition, err.Error())
	}

	// Concurrent edit: reload and retry
	if errors.Is(err, catalog.ErrStaleWorkingSet) || errors.Is(err, docstore.ErrRevisionMismatch) {
		return status.Error(codes.Aborted, err.Error())
	}

	switch {
	case errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return status.Error(codes.Unauthenticated, err.Error())
	case errors.Is(err, auth.ErrNotAdmin),
		errors.Is(err, docstore.ErrPermissionDenied):
		return status.Error(codes.PermissionDenied, err.Error())
	case errors.Is(err, docstore.ErrUnavailable),
		errors.Is(err, gobreaker.ErrOpenState):
		return status.Error(codes.Unavailable, err.Error())
	}

	return status.Error(codes.Internal, err.Error())
}

package domain

import "errors"

var (
	// ErrOrderNotFound indicates that an order with the given ID does not exist.
	ErrOrderNotFound = errors.New("order not found")

	// ErrContactRequestNotFound indicates that a contact request with the given ID does not exist.
	ErrContactRequestNotFound = errors.New("contact request not found")

	// ErrEmptyCart indicates a checkout without items.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrUnknownProduct indicates a cart line that matches no catalog product.
	ErrUnknownProduct = errors.New("cart references an unknown product")

	// ErrAnonymousCheckout indicates a checkout without a signed-in user.
	ErrAnonymousCheckout = errors.New("a signed-in user is required to order")

	// ErrMissingField indicates a required customer field left blank.
	ErrMissingField = errors.New("required field is missing")

	// ErrUnknownStatus indicates a status other than pending, completed or failed.
	ErrUnknownStatus = errors.New("unknown status")

	// ErrUnknownRecord indicates a record type other than orders or contact requests.
	ErrUnknownRecord = errors.New("unknown record type")
)

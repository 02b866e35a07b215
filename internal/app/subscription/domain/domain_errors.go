package domain

import "errors"

var (
	// ErrSubscriptionNotFound indicates that a subscription with the given ID does not exist.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrAnonymous indicates a subscription request without a signed-in user.
	ErrAnonymous = errors.New("a signed-in user is required")

	// ErrEmptyTransactionID indicates a request without the payment reference.
	ErrEmptyTransactionID = errors.New("transaction id cannot be empty")

	// ErrAlreadyActive indicates confirming an already active subscription.
	ErrAlreadyActive = errors.New("subscription is already active")
)

package docstore

import "errors"

var (
	// ErrNotFound is returned for reads of, and updates to, missing documents.
	ErrNotFound = errors.New("document not found")

	// ErrRevisionMismatch rejects a plan whose revision guard no longer holds.
	ErrRevisionMismatch = errors.New("collection revision mismatch")

	// ErrUndefinedField rejects documents that still carry the Undefined sentinel.
	ErrUndefinedField = errors.New("document contains an undefined field")

	// ErrNotNumeric is returned when incrementing a non-numeric field.
	ErrNotNumeric = errors.New("field is not numeric")

	// ErrNotArray is returned when appending to a non-array field.
	ErrNotArray = errors.New("field is not an array")

	// ErrPermissionDenied is returned when the store refuses the caller.
	ErrPermissionDenied = errors.New("permission denied by document store")

	// ErrUnavailable covers network and connectivity failures.
	ErrUnavailable = errors.New("document store unavailable")
)

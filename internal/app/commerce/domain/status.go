package domain

import "strings"

// Status is the back-office state of an order or a contact request.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.TrimSpace(s)); st {
	case StatusPending, StatusCompleted, StatusFailed:
		return st, nil
	}
	return "", ErrUnknownStatus
}

// Record names a back-office record type.
type Record string

const (
	RecordOrder   Record = "order"
	RecordContact Record = "contact"
)

const (
	CollectionOrders = "orders"
	// CollectionContactRequests keeps the historical collection name.
	CollectionContactRequests = "contracts"
)

// Collection returns the collection storing records of r.
func (r Record) Collection() (string, error) {
	switch r {
	case RecordOrder:
		return CollectionOrders, nil
	case RecordContact:
		return CollectionContactRequests, nil
	}
	return "", ErrUnknownRecord
}

func (r Record) NotFound() error {
	if r == RecordContact {
		return ErrContactRequestNotFound
	}
	return ErrOrderNotFound
}

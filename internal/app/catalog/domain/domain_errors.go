package domain

import "errors"

// Domain errors for catalog items
var (
	// ErrItemNotFound indicates that an item with the given ID does not exist.
	ErrItemNotFound = errors.New("catalog item not found")

	// ErrEmptyItemID indicates an item without an identifier.
	ErrEmptyItemID = errors.New("catalog item id cannot be empty")

	// ErrDuplicateItemID indicates two items of a working set share an ID.
	ErrDuplicateItemID = errors.New("catalog item id is duplicated in the working set")

	// ErrItemCollectionMismatch indicates an item saved into a collection it does not belong to.
	ErrItemCollectionMismatch = errors.New("catalog item does not belong to the collection")

	// ErrUnknownCollection indicates a collection that is not a catalog collection.
	ErrUnknownCollection = errors.New("unknown catalog collection")

	// ErrUnknownKind indicates an unsupported item kind tag.
	ErrUnknownKind = errors.New("unknown catalog item kind")

	// ErrNegativePrice indicates a product priced below zero.
	ErrNegativePrice = errors.New("price cannot be negative")
)

// ErrStaleWorkingSet indicates the collection changed since the working set was loaded.
var ErrStaleWorkingSet = errors.New("working set is stale: collection changed since it was loaded")

// ErrAccessDenied indicates a paid video requested without an active subscription.
var ErrAccessDenied = errors.New("an active subscription is required for this video")

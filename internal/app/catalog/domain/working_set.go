package domain

import (
	"fmt"
	"reflect"
	"sort"
)

// ValidateWorkingSet checks the items an operator wants to save into
// collection: every item belongs there, IDs are non-empty and unique.
func ValidateWorkingSet(collection string, items []Item) error {
	if !IsCatalogCollection(collection) {
		return fmt.Errorf("%w: %q", ErrUnknownCollection, collection)
	}
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if isNil(it) {
			return fmt.Errorf("item %d: %w", i, ErrEmptyItemID)
		}
		if it.Kind().Collection() != collection {
			return fmt.Errorf("item %s (%s): %w %q", it.ItemID(), it.Kind(), ErrItemCollectionMismatch, collection)
		}
		if err := it.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
		if _, dup := seen[it.ItemID()]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateItemID, it.ItemID())
		}
		seen[it.ItemID()] = struct{}{}
	}
	return nil
}

// isNil also catches typed nil pointers such as (*Article)(nil).
func isNil(it Item) bool {
	if it == nil {
		return true
	}
	v := reflect.ValueOf(it)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Reconciliation is the set of writes that turns a remote snapshot into the
// working set.
type Reconciliation struct {
	Upserts []Item
	Deletes []string
}

// Diff upserts every local item and deletes every remote ID the working set
// no longer holds. Deletes are sorted.
func Diff(remoteIDs []string, items []Item) Reconciliation {
	local := make(map[string]struct{}, len(items))
	for _, it := range items {
		local[it.ItemID()] = struct{}{}
	}

	deletes := make([]string, 0)
	for _, id := range remoteIDs {
		if _, keep := local[id]; !keep {
			deletes = append(deletes, id)
		}
	}
	sort.Strings(deletes)

	return Reconciliation{
		Upserts: append([]Item(nil), items...),
		Deletes: deletes,
	}
}

// Package wire renders domain objects in the document shape both transports
// serve: camelCase field names, RFC3339 times and the document id under "id".
package wire

import (
	"fmt"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	catalogrepo "github.com/murkotick/storefront-service/internal/app/catalog/repo"
	commerce "github.com/murkotick/storefront-service/internal/app/commerce/domain"
	commercerepo "github.com/murkotick/storefront-service/internal/app/commerce/repo"
	feature "github.com/murkotick/storefront-service/internal/app/feature/domain"
	featurerepo "github.com/murkotick/storefront-service/internal/app/feature/repo"
	subscription "github.com/murkotick/storefront-service/internal/app/subscription/domain"
	subscriptionrepo "github.com/murkotick/storefront-service/internal/app/subscription/repo"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

const FieldID = "id"

// withID returns a JSON-normalised copy of f (nested values become
// map[string]any, []any and float64) carrying id.
func withID(id string, f docstore.Fields) map[string]any {
	out := f.Clone()
	out[FieldID] = id
	return map[string]any(out)
}

func Item(it catalog.Item) map[string]any {
	return withID(it.ItemID(), catalogrepo.ItemFields(it))
}

func Items[T catalog.Item](items []T) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		out = append(out, Item(it))
	}
	return out
}

// DecodeItem parses a client document of collection. The id comes from the
// "id" field.
func DecodeItem(collection string, m map[string]any) (catalog.Item, error) {
	id, _ := m[FieldID].(string)
	if id == "" {
		return nil, catalog.ErrEmptyItemID
	}
	f := docstore.Fields{}
	for k, v := range m {
		if k != FieldID {
			f[k] = v
		}
	}
	it, err := catalogrepo.DecodeItem(&docstore.Document{Collection: collection, ID: id, Fields: f.Clone()})
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", id, err)
	}
	return it, nil
}

func Order(o *commerce.Order) map[string]any {
	return withID(o.ID, commercerepo.EncodeOrder(o))
}

func Orders(list []*commerce.Order) []any {
	out := make([]any, 0, len(list))
	for _, o := range list {
		out = append(out, Order(o))
	}
	return out
}

func Contact(c *commerce.ContactRequest) map[string]any {
	return withID(c.ID, commercerepo.EncodeContact(c))
}

func Contacts(list []*commerce.ContactRequest) []any {
	out := make([]any, 0, len(list))
	for _, c := range list {
		out = append(out, Contact(c))
	}
	return out
}

func Subscription(s *subscription.Subscription) map[string]any {
	return withID(s.ID, subscriptionrepo.Encode(s))
}

func Subscriptions(list []*subscription.Subscription) []any {
	out := make([]any, 0, len(list))
	for _, s := range list {
		out = append(out, Subscription(s))
	}
	return out
}

func Feature(f *feature.Feature) map[string]any {
	return withID(f.ID, featurerepo.EncodeFeature(f))
}

func Features(list []*feature.Feature) []any {
	out := make([]any, 0, len(list))
	for _, f := range list {
		out = append(out, Feature(f))
	}
	return out
}

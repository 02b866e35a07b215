package admin

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	"github.com/murkotick/storefront-service/internal/app/catalog/usecases/reconcile_collection"
	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	settingsrepo "github.com/murkotick/storefront-service/internal/app/settings/repo"
	"github.com/murkotick/storefront-service/internal/app/settings/usecases/save_settings"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
	"github.com/murkotick/storefront-service/internal/transport/wire"
)

// errInvalidRequest marks malformed requests; mapError turns it into
// codes.InvalidArgument.
var errInvalidRequest = errors.New("invalid request")

func invalid(err error) error {
	return fmt.Errorf("%w: %v", errInvalidRequest, err)
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("encode reply: %w", err)
	}
	return s, nil
}

func stringList(ss []string) []any {
	out := make([]any, 0, len(ss))
	for _, s := range ss {
		out = append(out, s)
	}
	return out
}

func mapSaveCollection(req *structpb.Struct) (reconcile_collection.Request, error) {
	collection, err := requireString(req, "collection")
	if err != nil {
		return reconcile_collection.Request{}, invalid(err)
	}
	revision, err := requireInt(req, "revision")
	if err != nil {
		return reconcile_collection.Request{}, invalid(err)
	}
	raw, err := requireList(req, "items")
	if err != nil {
		return reconcile_collection.Request{}, invalid(err)
	}
	if !catalog.IsCatalogCollection(collection) {
		return reconcile_collection.Request{}, fmt.Errorf("%w: %q", catalog.ErrUnknownCollection, collection)
	}

	items := make([]catalog.Item, 0, len(raw))
	for i, r := range raw {
		m, ok := r.(map[string]any)
		if !ok {
			return reconcile_collection.Request{}, invalid(fmt.Errorf("items[%d] must be an object", i))
		}
		it, err := wire.DecodeItem(collection, m)
		if err != nil {
			return reconcile_collection.Request{}, fmt.Errorf("items[%d]: %w", i, err)
		}
		items = append(items, it)
	}
	return reconcile_collection.Request{Collection: collection, Items: items, ExpectedRevision: revision}, nil
}

func mapSaveCollectionReply(res *reconcile_collection.Result, collection string) map[string]any {
	return map[string]any{
		"collection": collection,
		"upserted":   res.Upserted,
		"deleted":    stringList(res.Deleted),
		"revision":   res.Revision,
	}
}

// mapSaveSettings reads the documents present in m; absent ones stay untouched.
func mapSaveSettings(m map[string]any) (save_settings.Request, error) {
	var req save_settings.Request
	if v, ok := m[settings.DocCategories]; ok {
		var c settings.Categories
		if err := decodeDoc(v, &c); err != nil {
			return req, invalid(fmt.Errorf("categories: %v", err))
		}
		req.Categories = &c
	}
	if v, ok := m[settings.DocPayment]; ok {
		var p settings.PaymentDetails
		if err := decodeDoc(v, &p); err != nil {
			return req, invalid(fmt.Errorf("payment: %v", err))
		}
		req.Payment = &p
	}
	if v, ok := m[settings.DocSubscriptionPlans]; ok {
		plans := settings.Plans{}
		if err := decodeDoc(v, &plans); err != nil {
			return req, invalid(fmt.Errorf("subscriptionPlans: %v", err))
		}
		req.Plans = plans
	}
	if v, ok := m[settings.DocAbout]; ok {
		var a settings.About
		if err := decodeDoc(v, &a); err != nil {
			return req, invalid(fmt.Errorf("about: %v", err))
		}
		req.About = &a
	}
	return req, nil
}

func decodeDoc(v any, out any) error {
	m, ok := v.(map[string]any)
	if !ok {
		return fmt.Errorf("must be an object")
	}
	return settingsrepo.FromFields(docstore.Fields(m), out)
}

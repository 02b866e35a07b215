package admin

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/protobuf/types/known/structpb"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	catalogqueries "github.com/murkotick/storefront-service/internal/app/catalog/queries"
	"github.com/murkotick/storefront-service/internal/app/catalog/usecases/reconcile_collection"
	commerce "github.com/murkotick/storefront-service/internal/app/commerce/domain"
	commercequeries "github.com/murkotick/storefront-service/internal/app/commerce/queries"
	"github.com/murkotick/storefront-service/internal/app/commerce/usecases/delete_record"
	"github.com/murkotick/storefront-service/internal/app/commerce/usecases/update_status"
	"github.com/murkotick/storefront-service/internal/app/feature/usecases/reply_to_feedback"
	"github.com/murkotick/storefront-service/internal/app/settings/categorystore"
	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	"github.com/murkotick/storefront-service/internal/app/settings/usecases/save_settings"
	subscriptionqueries "github.com/murkotick/storefront-service/internal/app/subscription/queries"
	"github.com/murkotick/storefront-service/internal/app/subscription/usecases/confirm_subscription"
	"github.com/murkotick/storefront-service/internal/app/subscription/usecases/revoke_subscription"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/transport/wire"
)

// Commands groups write interactors.
type Commands struct {
	SaveCollection *reconcile_collection.Interactor
	SaveSettings   *save_settings.Interactor
	UpdateStatus   *update_status.Interactor
	DeleteRecord   *delete_record.Interactor
	Confirm        *confirm_subscription.Interactor
	Revoke         *revoke_subscription.Interactor
	Reply          *reply_to_feedback.Interactor
}

// Queries groups read models.
type Queries struct {
	Catalog       *catalogqueries.DocstoreReadModel
	Records       *commercequeries.RecordsReader
	Subscriptions *subscriptionqueries.SubscriptionReader
	Categories    *categorystore.Store
}

// Handler is the back-office transport adapter. It validates Struct
// requests, maps them to application requests and delegates.
type Handler struct {
	commands Commands
	queries  Queries
	clock    clock.Clock
}

var _ AdminServer = (*Handler)(nil)

func NewHandler(cmd Commands, qry Queries, clk clock.Clock) *Handler {
	return &Handler{commands: cmd, queries: qry, clock: clk}
}

func empty() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}
}

func (h *Handler) LoadCollection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	collection, err := requireString(req, "collection")
	if err != nil {
		return nil, mapError(invalid(err))
	}
	if !catalog.IsCatalogCollection(collection) {
		return nil, mapError(fmt.Errorf("%w: %q", catalog.ErrUnknownCollection, collection))
	}
	items, revision, err := h.queries.Catalog.LoadCollection(ctx, collection)
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(map[string]any{
		"collection": collection,
		"revision":   revision,
		"items":      wire.Items(items),
	})
}

func (h *Handler) SaveCollection(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	appReq, err := mapSaveCollection(req)
	if err != nil {
		return nil, mapError(err)
	}
	res, err := h.commands.SaveCollection.Execute(ctx, appReq)
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(mapSaveCollectionReply(res, appReq.Collection))
}

func (h *Handler) SaveSettings(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	appReq, err := mapSaveSettings(req.AsMap())
	if err != nil {
		return nil, mapError(err)
	}
	if err := h.commands.SaveSettings.Execute(ctx, appReq); err != nil {
		return nil, mapError(err)
	}
	return empty(), nil
}

// SaveAll saves several collections and the settings concurrently. Each
// collection commits on its own; the first failure is returned and the
// others may still have been saved.
func (h *Handler) SaveAll(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var collections []reconcile_collection.Request
	if _, ok := req.GetFields()["collections"]; ok {
		raw, err := requireList(req, "collections")
		if err != nil {
			return nil, mapError(invalid(err))
		}
		seen := map[string]bool{}
		for i, r := range raw {
			m, ok := r.(map[string]any)
			if !ok {
				return nil, mapError(invalid(fmt.Errorf("collections[%d] must be an object", i)))
			}
			s, err := structpb.NewStruct(m)
			if err != nil {
				return nil, mapError(invalid(err))
			}
			appReq, err := mapSaveCollection(s)
			if err != nil {
				return nil, mapError(fmt.Errorf("collections[%d]: %w", i, err))
			}
			if seen[appReq.Collection] {
				return nil, mapError(invalid(fmt.Errorf("collection %q listed twice", appReq.Collection)))
			}
			seen[appReq.Collection] = true
			collections = append(collections, appReq)
		}
	}

	var settingsReq *save_settings.Request
	if v, ok := req.GetFields()["settings"]; ok {
		m, ok := v.AsInterface().(map[string]any)
		if !ok {
			return nil, mapError(invalid(fmt.Errorf("settings must be an object")))
		}
		r, err := mapSaveSettings(m)
		if err != nil {
			return nil, mapError(err)
		}
		settingsReq = &r
	}
	if len(collections) == 0 && settingsReq == nil {
		return nil, mapError(invalid(fmt.Errorf("nothing to save")))
	}

	results := make([]any, len(collections))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range collections {
		g.Go(func() error {
			res, err := h.commands.SaveCollection.Execute(gctx, c)
			if err != nil {
				return err
			}
			results[i] = mapSaveCollectionReply(res, c.Collection)
			return nil
		})
	}
	if settingsReq != nil {
		g.Go(func() error {
			return h.commands.SaveSettings.Execute(gctx, *settingsReq)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, mapError(err)
	}

	return toStruct(map[string]any{
		"collections":   results,
		"settingsSaved": settingsReq != nil,
	})
}

func (h *Handler) ListOrders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	size, offset, err := pageParams(req)
	if err != nil {
		return nil, mapError(invalid(err))
	}
	orders, err := h.queries.Records.ListOrders(ctx, size+1, offset)
	if err != nil {
		return nil, mapError(err)
	}
	next := ""
	if len(orders) > size {
		orders = orders[:size]
		next = encodePageToken(offset + size)
	}
	return toStruct(map[string]any{
		"orders":        wire.Orders(orders),
		"nextPageToken": next,
	})
}

func (h *Handler) UpdateOrderStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.updateStatus(ctx, commerce.RecordOrder, req)
}

func (h *Handler) DeleteOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.deleteRecord(ctx, commerce.RecordOrder, req)
}

func (h *Handler) ListContactRequests(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	size, offset, err := pageParams(req)
	if err != nil {
		return nil, mapError(invalid(err))
	}
	list, err := h.queries.Records.ListContactRequests(ctx, size+1, offset)
	if err != nil {
		return nil, mapError(err)
	}
	next := ""
	if len(list) > size {
		list = list[:size]
		next = encodePageToken(offset + size)
	}
	return toStruct(map[string]any{
		"contactRequests": wire.Contacts(list),
		"nextPageToken":   next,
	})
}

func (h *Handler) UpdateContactRequestStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.updateStatus(ctx, commerce.RecordContact, req)
}

func (h *Handler) DeleteContactRequest(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	return h.deleteRecord(ctx, commerce.RecordContact, req)
}

func (h *Handler) updateStatus(ctx context.Context, rec commerce.Record, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireString(req, "id")
	if err != nil {
		return nil, mapError(invalid(err))
	}
	st, err := requireString(req, "status")
	if err != nil {
		return nil, mapError(invalid(err))
	}
	if err := h.commands.UpdateStatus.Execute(ctx, rec, id, st); err != nil {
		return nil, mapError(err)
	}
	return empty(), nil
}

func (h *Handler) deleteRecord(ctx context.Context, rec commerce.Record, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireString(req, "id")
	if err != nil {
		return nil, mapError(invalid(err))
	}
	if err := h.commands.DeleteRecord.Execute(ctx, rec, id); err != nil {
		return nil, mapError(err)
	}
	return empty(), nil
}

func (h *Handler) ListSubscriptions(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	list, err := h.queries.Subscriptions.List(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(map[string]any{"subscriptions": wire.Subscriptions(list)})
}

func (h *Handler) ConfirmSubscription(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireString(req, "id")
	if err != nil {
		return nil, mapError(invalid(err))
	}
	s, err := h.commands.Confirm.Execute(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(map[string]any{"subscription": wire.Subscription(s)})
}

func (h *Handler) RevokeSubscription(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := requireString(req, "id")
	if err != nil {
		return nil, mapError(invalid(err))
	}
	if err := h.commands.Revoke.Execute(ctx, id); err != nil {
		return nil, mapError(err)
	}
	return empty(), nil
}

func (h *Handler) ReplyToFeedback(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	featureID, err := requireString(req, "featureId")
	if err != nil {
		return nil, mapError(invalid(err))
	}
	feedbackID, err := requireString(req, "feedbackId")
	if err != nil {
		return nil, mapError(invalid(err))
	}
	reply, err := h.commands.Reply.Execute(ctx, featureID, feedbackID, optionalString(req, "text"))
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(map[string]any{
		"reply": map[string]any{
			"text":      reply.Text,
			"createdAt": reply.CreatedAt.UTC().Format(time.RFC3339Nano),
		},
	})
}

// categoryListOf names the category list whose first entry a new item of
// kind k is filed under. Slides have none.
func categoryListOf(k catalog.Kind) string {
	switch k {
	case catalog.KindArticle:
		return settings.ListArticleCategories
	case catalog.KindShop:
		return settings.ListProductCollections
	case catalog.KindInternet:
		return settings.ListInternetClasses
	case catalog.KindVideo:
		return settings.ListTVChannels
	}
	return ""
}

// NewItem returns a fresh, unsaved item of the requested kind, filed under
// the first category of its list. The caller adds it to its working set.
func (h *Handler) NewItem(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := requireString(req, "kind")
	if err != nil {
		return nil, mapError(invalid(err))
	}
	kind, err := catalog.ParseKind(raw)
	if err != nil {
		return nil, mapError(fmt.Errorf("%w: %q", err, raw))
	}

	category := ""
	if name := categoryListOf(kind); name != "" {
		cats, err := h.queries.Categories.Get(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		list, err := cats.List(name)
		if err != nil {
			return nil, mapError(err)
		}
		category = settings.FirstID(list)
	}

	it, err := catalog.NewItem(kind, category, h.clock.Now())
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(map[string]any{
		"collection": kind.Collection(),
		"item":       wire.Item(it),
	})
}

// NewCategory returns a fresh category for the named list. It is saved with
// the categories document through SaveSettings.
func (h *Handler) NewCategory(_ context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	name, err := requireString(req, "list")
	if err != nil {
		return nil, mapError(invalid(err))
	}
	if _, err := (settings.Categories{}).List(name); err != nil {
		return nil, mapError(err)
	}
	c := settings.NewCategory()
	return toStruct(map[string]any{
		"list":     name,
		"category": map[string]any{"id": c.ID, "label": c.Label},
	})
}

func pageParams(req *structpb.Struct) (int, int, error) {
	size, _, err := optionalInt(req, "pageSize")
	if err != nil {
		return 0, 0, err
	}
	offset, err := decodePageToken(optionalString(req, "pageToken"))
	if err != nil {
		return 0, 0, err
	}
	return clampPageSize(int(size)), offset, nil
}

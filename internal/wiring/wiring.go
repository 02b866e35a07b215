// Package wiring assembles the application graph on top of a document store.
package wiring

import (
	"context"

	catalogqueries "github.com/murkotick/storefront-service/internal/app/catalog/queries"
	catalogrepo "github.com/murkotick/storefront-service/internal/app/catalog/repo"
	"github.com/murkotick/storefront-service/internal/app/catalog/usecases/export_collection"
	"github.com/murkotick/storefront-service/internal/app/catalog/usecases/reconcile_collection"
	"github.com/murkotick/storefront-service/internal/app/catalog/usecases/record_engagement"
	commercequeries "github.com/murkotick/storefront-service/internal/app/commerce/queries"
	commercerepo "github.com/murkotick/storefront-service/internal/app/commerce/repo"
	"github.com/murkotick/storefront-service/internal/app/commerce/usecases/delete_record"
	"github.com/murkotick/storefront-service/internal/app/commerce/usecases/submit_contact_request"
	"github.com/murkotick/storefront-service/internal/app/commerce/usecases/submit_order"
	"github.com/murkotick/storefront-service/internal/app/commerce/usecases/update_status"
	featurequeries "github.com/murkotick/storefront-service/internal/app/feature/queries"
	featurerepo "github.com/murkotick/storefront-service/internal/app/feature/repo"
	"github.com/murkotick/storefront-service/internal/app/feature/usecases/add_feedback"
	"github.com/murkotick/storefront-service/internal/app/feature/usecases/reply_to_feedback"
	mediacontracts "github.com/murkotick/storefront-service/internal/app/media/contracts"
	"github.com/murkotick/storefront-service/internal/app/media/usecases/synthesize_speech"
	"github.com/murkotick/storefront-service/internal/app/media/usecases/upload_file"
	"github.com/murkotick/storefront-service/internal/app/settings/categorystore"
	settings "github.com/murkotick/storefront-service/internal/app/settings/domain"
	settingsqueries "github.com/murkotick/storefront-service/internal/app/settings/queries"
	settingsrepo "github.com/murkotick/storefront-service/internal/app/settings/repo"
	"github.com/murkotick/storefront-service/internal/app/settings/usecases/save_settings"
	subscriptionqueries "github.com/murkotick/storefront-service/internal/app/subscription/queries"
	subscriptionrepo "github.com/murkotick/storefront-service/internal/app/subscription/repo"
	"github.com/murkotick/storefront-service/internal/app/subscription/usecases/confirm_subscription"
	"github.com/murkotick/storefront-service/internal/app/subscription/usecases/request_subscription"
	"github.com/murkotick/storefront-service/internal/app/subscription/usecases/revoke_subscription"
	"github.com/murkotick/storefront-service/internal/app/subscription/usecases/sweep_expired"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
	"github.com/murkotick/storefront-service/internal/pkg/metrics"
	"github.com/murkotick/storefront-service/internal/pkg/notify"
	"github.com/murkotick/storefront-service/internal/transport/grpc/admin"
	"github.com/murkotick/storefront-service/internal/transport/httpapi"
)

type Deps struct {
	Store    docstore.Store
	Clock    clock.Clock
	Metrics  *metrics.Metrics
	Notifier notify.Notifier
	// Optional backends; nil disables the matching endpoints.
	Objects     mediacontracts.ObjectStore
	Synthesizer mediacontracts.Synthesizer
	Defaults    *settings.Defaults
}

// App is the assembled application.
type App struct {
	Categories *categorystore.Store
	HTTP       *httpapi.Handler
	Admin      *admin.Handler
	Export     *export_collection.Interactor
	Sweep      *sweep_expired.Interactor
}

func Build(d Deps) *App {
	if d.Clock == nil {
		d.Clock = clock.RealClock{}
	}
	if d.Notifier == nil {
		d.Notifier = notify.LogNotifier{}
	}
	store, clk := d.Store, d.Clock

	settingsReader := settingsqueries.NewSettingsReader(store, d.Defaults)
	categories := categorystore.New(settingsReader)

	catalogRM := catalogqueries.NewDocstoreReadModel(store)
	itemRepo := catalogrepo.NewItemRepo()
	records := commercequeries.NewRecordsReader(store)
	recordRepo := commercerepo.NewRecordRepo()
	subs := subscriptionqueries.NewSubscriptionReader(store, clk)
	subRepo := subscriptionrepo.NewSubscriptionRepo()
	features := featurequeries.NewFeatureReader(store)
	featureRepo := featurerepo.NewFeatureRepo()

	engagement := record_engagement.NewInteractor(itemRepo, catalogRM, subs, store)

	h := &httpapi.Handler{
		Catalog:       catalogRM,
		Engagement:    engagement,
		Settings:      settingsReader,
		Categories:    categories,
		Features:      features,
		Feedback:      add_feedback.NewInteractor(featureRepo, store, clk),
		Orders:        submit_order.NewInteractor(recordRepo, catalogRM, store, d.Notifier, clk),
		Contacts:      submit_contact_request.NewInteractor(recordRepo, store, d.Notifier, clk),
		Subscriptions: request_subscription.NewInteractor(subRepo, settingsReader, store, d.Notifier, clk),
	}
	if d.Objects != nil {
		h.Uploads = upload_file.NewInteractor(d.Objects, clk)
	}
	if d.Synthesizer != nil {
		h.Speech = synthesize_speech.NewInteractor(d.Synthesizer)
	}

	adminHandler := admin.NewHandler(
		admin.Commands{
			SaveCollection: reconcile_collection.NewInteractor(itemRepo, store, store, categories, d.Metrics, clk),
			SaveSettings:   save_settings.NewInteractor(settingsrepo.NewSettingsRepo(), store, categories, clk),
			UpdateStatus:   update_status.NewInteractor(recordRepo, store, clk),
			DeleteRecord:   delete_record.NewInteractor(recordRepo, records, store),
			Confirm:        confirm_subscription.NewInteractor(subRepo, subs, store, clk),
			Revoke:         revoke_subscription.NewInteractor(subRepo, subs, store, clk),
			Reply:          reply_to_feedback.NewInteractor(featureRepo, features, store, clk),
		},
		admin.Queries{
			Catalog:       catalogRM,
			Records:       records,
			Subscriptions: subs,
			Categories:    categories,
		},
		clk,
	)

	return &App{
		Categories: categories,
		HTTP:       h,
		Admin:      adminHandler,
		Export:     export_collection.NewInteractor(catalogRM),
		Sweep:      sweep_expired.NewInteractor(subRepo, subs, store, clk),
	}
}

// SweepExpired runs the expiry sweep; its signature fits the job scheduler.
func (a *App) SweepExpired(ctx context.Context) error {
	_, err := a.Sweep.Execute(ctx)
	return err
}

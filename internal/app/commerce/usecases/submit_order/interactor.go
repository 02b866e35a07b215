package submit_order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
	contracts "github.com/murkotick/storefront-service/internal/app/commerce/contracts"
	"github.com/murkotick/storefront-service/internal/app/commerce/domain"
	"github.com/murkotick/storefront-service/internal/app/shared"
	"github.com/murkotick/storefront-service/internal/pkg/auth"
	"github.com/murkotick/storefront-service/internal/pkg/clock"
	"github.com/murkotick/storefront-service/internal/pkg/docstore"
)

// Line is one cart entry as sent by the storefront.
type Line struct {
	ProductID     string
	SelectedColor string
	SelectedSize  string
}

type Request struct {
	Identity *auth.Identity
	Customer domain.Customer
	Lines    []Line
}

// Quote is the priced cart.
type Quote struct {
	Lines       []domain.CartLine
	Total       int64
	DeliveryFee int64
	FinalTotal  int64
}

// Interactor prices carts and records orders. Prices always come from the
// stored catalog, never from the client.
type Interactor struct {
	Repo      contracts.RecordRepo
	Catalog   contracts.ProductCatalog
	Committer contracts.Committer
	Notifier  contracts.Notifier
	Clock     clock.Clock
}

func NewInteractor(repo contracts.RecordRepo, cat contracts.ProductCatalog, committer contracts.Committer, notifier contracts.Notifier, clk clock.Clock) *Interactor {
	return &Interactor{Repo: repo, Catalog: cat, Committer: committer, Notifier: notifier, Clock: clk}
}

// Quote resolves the lines into a cart. Repeated products count once.
func (it *Interactor) Quote(ctx context.Context, lines []Line) (*Quote, error) {
	cart, err := it.resolve(ctx, lines)
	if err != nil {
		return nil, err
	}
	return &Quote{
		Lines:       cart.Lines(),
		Total:       cart.Total(),
		DeliveryFee: cart.DeliveryFee(),
		FinalTotal:  cart.FinalTotal(),
	}, nil
}

func (it *Interactor) Execute(ctx context.Context, req Request) (*domain.Order, error) {
	if req.Identity.IsAnonymous() {
		return nil, domain.ErrAnonymousCheckout
	}
	if err := req.Customer.Validate(); err != nil {
		return nil, err
	}
	cart, err := it.resolve(ctx, req.Lines)
	if err != nil {
		return nil, err
	}

	now := it.Clock.Now()
	order, err := domain.NewOrder(req.Identity.UID, req.Customer, cart, now)
	if err != nil {
		return nil, err
	}

	plan := docstore.NewPlan()
	plan.Add(it.Repo.CreateOrderMut(order))
	ev := &domain.OrderSubmittedEvent{
		OrderID:     order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Items:       len(order.Items),
		SubmittedAt: now,
	}
	if err := shared.EnqueueEvents(plan, now, ev); err != nil {
		return nil, err
	}
	if err := it.Committer.Apply(ctx, plan); err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	logger := log.Ctx(ctx).With().Str("component", "commerce").Str("order_id", order.ID).Logger()
	logger.Info().Int64("total", order.TotalAmount).Int("items", len(order.Items)).Msg("order submitted")

	if it.Notifier != nil {
		if err := it.Notifier.Notify(ctx, "Nouvelle commande", orderSummary(order)); err != nil {
			logger.Warn().Err(err).Msg("order notification failed")
		}
	}
	return order, nil
}

func (it *Interactor) resolve(ctx context.Context, lines []Line) (*domain.Cart, error) {
	if len(lines) == 0 {
		return nil, domain.ErrEmptyCart
	}
	cart := domain.NewCart()
	for _, l := range lines {
		p, err := it.Catalog.GetProduct(ctx, l.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrItemNotFound) {
				return nil, fmt.Errorf("%w: %s", domain.ErrUnknownProduct, l.ProductID)
			}
			return nil, err
		}
		cart.Add(domain.CartLine{Product: p, SelectedColor: l.SelectedColor, SelectedSize: l.SelectedSize})
	}
	return cart, nil
}

func orderSummary(o *domain.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Client: %s <%s> %s\n", o.Customer.Name, o.Customer.Email, o.Customer.Phone)
	fmt.Fprintf(&b, "Transaction: %s\n", o.Customer.TransactionID)
	for _, it := range o.Items {
		fmt.Fprintf(&b, "- %s: %d FCFA\n", it.Title, it.Price)
	}
	if o.DeliveryFee > 0 {
		fmt.Fprintf(&b, "Livraison: %d FCFA\n", o.DeliveryFee)
	}
	fmt.Fprintf(&b, "Total: %d FCFA\n", o.TotalAmount)
	if o.Customer.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", o.Customer.Notes)
	}
	return b.String()
}

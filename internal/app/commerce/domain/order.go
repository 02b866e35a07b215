package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
)

// Customer is the contact and payment reference typed at checkout.
type Customer struct {
	Name          string
	Email         string
	Phone         string
	TransactionID string
	Notes         string
}

func (c Customer) Validate() error {
	required := []struct {
		name, value string
	}{
		{"customerName", c.Name},
		{"customerEmail", c.Email},
		{"customerPhone", c.Phone},
		{"transactionId", c.TransactionID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, r.name)
		}
	}
	return nil
}

// OrderItem is the snapshot of a product kept on an order.
type OrderItem struct {
	ID            string
	Title         string
	Price         int64
	Collection    string
	InternetClass string
	SelectedColor string
	SelectedSize  string
}

type Order struct {
	ID          string
	UserID      string
	Customer    Customer
	Items       []OrderItem
	DeliveryFee int64
	TotalAmount int64
	Status      Status
	CreatedAt   time.Time
}

// NewOrder snapshots the cart into a pending order.
func NewOrder(userID string, customer Customer, cart *Cart, now time.Time) (*Order, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrAnonymousCheckout
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if cart == nil || cart.Len() == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]OrderItem, 0, cart.Len())
	for _, l := range cart.Lines() {
		info := l.Product.Info()
		oi := OrderItem{
			ID:            info.ID,
			Title:         info.Title,
			Price:         info.Price,
			SelectedColor: l.SelectedColor,
			SelectedSize:  l.SelectedSize,
		}
		switch p := l.Product.(type) {
		case *catalog.ShopProduct:
			oi.Collection = p.Collection
		case *catalog.InternetListing:
			oi.InternetClass = p.InternetClass
		}
		items = append(items, oi)
	}

	customer.Name = strings.TrimSpace(customer.Name)
	customer.Email = strings.TrimSpace(customer.Email)
	customer.Phone = strings.TrimSpace(customer.Phone)
	customer.TransactionID = strings.TrimSpace(customer.TransactionID)

	return &Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Customer:    customer,
		Items:       items,
		DeliveryFee: cart.DeliveryFee(),
		TotalAmount: cart.FinalTotal(),
		Status:      StatusPending,
		CreatedAt:   now,
	}, nil
}

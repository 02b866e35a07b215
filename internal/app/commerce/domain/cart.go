package domain

import (
	catalog "github.com/murkotick/storefront-service/internal/app/catalog/domain"
)

// DeliveryFee is charged once per order that contains a shop product.
const DeliveryFee int64 = 5000

// CartLine is a product with the buyer's choices.
type CartLine struct {
	Product       catalog.Product
	SelectedColor string
	SelectedSize  string
}

// Cart holds distinct products in insertion order.
type Cart struct {
	lines []CartLine
}

func NewCart() *Cart {
	return &Cart{}
}

// Add puts a line in the cart. A product already in the cart is ignored and
// Add reports false.
func (c *Cart) Add(line CartLine) bool {
	if line.Product == nil {
		return false
	}
	for _, l := range c.lines {
		if l.Product.ItemID() == line.Product.ItemID() {
			return false
		}
	}
	c.lines = append(c.lines, line)
	return true
}

func (c *Cart) Remove(productID string) {
	out := c.lines[:0]
	for _, l := range c.lines {
		if l.Product.ItemID() != productID {
			out = append(out, l)
		}
	}
	c.lines = out
}

func (c *Cart) Lines() []CartLine {
	return append([]CartLine(nil), c.lines...)
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// Total is the sum of the product prices.
func (c *Cart) Total() int64 {
	var sum int64
	for _, l := range c.lines {
		sum += l.Product.Info().Price
	}
	return sum
}

// DeliveryFee is charged when any line is a physical shop product.
func (c *Cart) DeliveryFee() int64 {
	for _, l := range c.lines {
		if l.Product.Kind() == catalog.KindShop {
			return DeliveryFee
		}
	}
	return 0
}

func (c *Cart) FinalTotal() int64 {
	return c.Total() + c.DeliveryFee()
}

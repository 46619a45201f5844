package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductSnapshot is the frozen view of a product captured when it enters a
// cart. Catalog price changes made while the cart is open never retouch an
// already-added line.
type ProductSnapshot struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
}

// Snapshot captures the cart-entry view of a product.
func Snapshot(p Product) ProductSnapshot {
	return ProductSnapshot{
		ID:    p.ID,
		Name:  p.Name,
		SKU:   p.SKU,
		Price: p.Price,
	}
}

// CartItem is one line in an active cart. Quantity is always >= 1; a line
// whose quantity drops to zero is removed, never kept.
type CartItem struct {
	Product  ProductSnapshot `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Cart is a point-in-time view of a terminal's session state. Items keep
// insertion order and Total always equals the sum of the line subtotals.
type Cart struct {
	Items         []CartItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Online        bool            `json:"online"`
	LastSync      time.Time       `json:"last_sync"`
}

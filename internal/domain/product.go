package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. The catalog is read-only from the terminal's
// perspective; products are created and maintained by the back office.
type Product struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	SKU       string          `json:"sku"`
	Barcode   string          `json:"barcode"`
	EAN       string          `json:"ean,omitempty"`
	Stock     int             `json:"stock"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// MatchesCode reports whether a scanned code resolves to this product.
// Matching is exact and case-sensitive on either barcode or EAN.
func (p Product) MatchesCode(code string) bool {
	if p.Barcode == code {
		return true
	}
	return p.EAN != "" && p.EAN == code
}

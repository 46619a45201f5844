package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is how the customer settles a sale.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "DINHEIRO"
	PaymentCard PaymentMethod = "CARTAO"
)

// Valid reports enumeration membership.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentCard
}

// SaleStatus is the lifecycle state of a persisted sale. The terminal only
// ever writes SaleClosed; PENDENTE and CANCELADA exist for the back office.
type SaleStatus string

const (
	SalePending   SaleStatus = "PENDENTE"
	SaleClosed    SaleStatus = "FECHADA"
	SaleCancelled SaleStatus = "CANCELADA"
)

// SaleItem is the frozen copy of a cart line at finalize time. Product name
// and price are denormalized so later catalog edits never rewrite history.
type SaleItem struct {
	ID           string          `json:"id"`
	SaleID       string          `json:"sale_id"`
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Quantity     int             `json:"quantity"`
	Subtotal     decimal.Decimal `json:"subtotal"`
}

// Sale is the immutable record produced by finalizing a populated cart.
type Sale struct {
	ID            string          `json:"id"`
	Items         []SaleItem      `json:"items"`
	Total         decimal.Decimal `json:"total"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        SaleStatus      `json:"status"`
	OperatorID    string          `json:"operator_id"`
	OperatorName  string          `json:"operator_name"`
	CreatedAt     time.Time       `json:"created_at"`
	VoidedAt      *time.Time      `json:"voided_at,omitempty"`
	VoidedBy      *string         `json:"voided_by,omitempty"`
}

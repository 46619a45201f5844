package domain

import "time"

// MovementType classifies a stock movement row. The terminal itself never
// writes movements; the schema is shared with the inventory system.
type MovementType string

const (
	MovementIn         MovementType = "ENTRADA"
	MovementOut        MovementType = "SAIDA"
	MovementAdjust     MovementType = "AJUSTE"
	MovementSale       MovementType = "VENDA"
	MovementCancelSale MovementType = "CANCELAMENTO"
)

// StockMovement mirrors the stock_movements table.
type StockMovement struct {
	ID          string       `json:"id"`
	ProductID   string       `json:"product_id"`
	Type        MovementType `json:"type"`
	Quantity    int          `json:"quantity"`
	ReferenceID string       `json:"reference_id,omitempty"`
	CreatedBy   string       `json:"created_by"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

package catalog

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// SeedProducts returns the demo catalog used when the terminal runs without
// a database.
func SeedProducts() []domain.Product {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	return []domain.Product{
		{
			ID:        "1",
			Name:      "Coca-Cola 2L",
			Price:     decimal.RequireFromString("8.50"),
			SKU:       "TGC001",
			Barcode:   "7894900011012",
			EAN:       "7894900011012",
			Stock:     50,
			Active:    true,
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:        "2",
			Name:      "Pão de Açúcar",
			Price:     decimal.RequireFromString("12.90"),
			SKU:       "TGC002",
			Barcode:   "TGC002",
			Stock:     25,
			Active:    true,
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:        "3",
			Name:      "Sabonete Dove",
			Price:     decimal.RequireFromString("4.50"),
			SKU:       "TGC003",
			Barcode:   "7891150047310",
			EAN:       "7891150047310",
			Stock:     100,
			Active:    true,
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:        "4",
			Name:      "Leite Integral 1L",
			Price:     decimal.RequireFromString("5.90"),
			SKU:       "TGC004",
			Barcode:   "TGC004",
			Stock:     30,
			Active:    true,
			CreatedAt: created,
			UpdatedAt: created,
		},
		{
			ID:        "5",
			Name:      "Arroz Branco 5kg",
			Price:     decimal.RequireFromString("22.90"),
			SKU:       "TGC005",
			Barcode:   "TGC005",
			Stock:     15,
			Active:    true,
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
}

// GenerateSKU produces a fresh SKU for back-office created products. Not
// collision-proof across restarts; the database keeps sku unique.
func GenerateSKU() string {
	ts := fmt.Sprint(time.Now().UnixMilli())
	if len(ts) > 6 {
		ts = ts[len(ts)-6:]
	}
	return "TGC" + ts
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// Products returns the full catalog as the lookup snapshot. Inactive rows
// are included: a scan must still resolve a deactivated product even though
// search hides it.
func (r *Repository) Products(ctx context.Context) ([]domain.Product, error) {
	query := `
		SELECT id, name, price, sku, barcode, ean, stock, active, created_at, updated_at
		FROM products
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var ean sql.NullString
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Price,
			&p.SKU,
			&p.Barcode,
			&ean,
			&p.Stock,
			&p.Active,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if ean.Valid {
			p.EAN = ean.String
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return products, nil
}

// InsertProduct seeds a catalog row. The back office owns product
// management; the terminal only uses this for bootstrap and tests.
func (r *Repository) InsertProduct(ctx context.Context, p domain.Product) error {
	query := `
		INSERT INTO products (id, name, price, sku, barcode, ean, stock, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`

	var ean interface{}
	if p.EAN != "" {
		ean = p.EAN
	}

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.Name, p.Price.String(), p.SKU, p.Barcode, ean,
		p.Stock, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// SaveSale persists a finalized sale: the sale row, its frozen item
// snapshots and one outbox event, all in a single transaction so a published
// event always refers to a durable sale.
func (r *Repository) SaveSale(ctx context.Context, sale *domain.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	saleQuery := `
		INSERT INTO sales (id, operator_id, operator_name, payment_method, status, total, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = tx.ExecContext(ctx, saleQuery,
		sale.ID, sale.OperatorID, sale.OperatorName,
		sale.PaymentMethod, sale.Status, sale.Total.String(), sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, product_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, item := range sale.Items {
		_, err = tx.ExecContext(ctx, itemQuery,
			item.ID, item.SaleID, item.ProductID, item.ProductName,
			item.ProductPrice.String(), item.Quantity, item.Subtotal.String())
		if err != nil {
			return fmt.Errorf("failed to insert sale item: %w", err)
		}
	}

	payload, err := json.Marshal(sale)
	if err != nil {
		return fmt.Errorf("failed to marshal sale payload: %w", err)
	}

	outboxQuery := `
		INSERT INTO outbox_events (aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, NOW())
	`
	if _, err = tx.ExecContext(ctx, outboxQuery, sale.ID, "sale.finalized", payload); err != nil {
		return fmt.Errorf("failed to insert outbox event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale: %w", err)
	}
	return nil
}

// ListSales returns sales newest first with their items. limit <= 0 means
// no cap.
func (r *Repository) ListSales(ctx context.Context, limit int) ([]domain.Sale, error) {
	query := `
		SELECT id, operator_id, operator_name, payment_method, status, total, voided_at, voided_by, created_at
		FROM sales
		ORDER BY created_at DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var s domain.Sale
		err := rows.Scan(
			&s.ID,
			&s.OperatorID,
			&s.OperatorName,
			&s.PaymentMethod,
			&s.Status,
			&s.Total,
			&s.VoidedAt,
			&s.VoidedBy,
			&s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	for i := range sales {
		items, err := r.saleItems(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
		sales[i].Items = items
	}
	return sales, nil
}

func (r *Repository) saleItems(ctx context.Context, saleID string) ([]domain.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, product_price, quantity, subtotal
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sale items: %w", err)
	}
	defer rows.Close()

	var items []domain.SaleItem
	for rows.Next() {
		var item domain.SaleItem
		err := rows.Scan(
			&item.ID,
			&item.SaleID,
			&item.ProductID,
			&item.ProductName,
			&item.ProductPrice,
			&item.Quantity,
			&item.Subtotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sale item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return items, nil
}

package checkout

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

func storedSale(id string) *domain.Sale {
	return &domain.Sale{
		ID:            id,
		Total:         decimal.RequireFromString("8.50"),
		PaymentMethod: domain.PaymentCash,
		Status:        domain.SaleClosed,
		OperatorID:    "1",
		OperatorName:  "Admin Sistema",
		CreatedAt:     time.Now(),
	}
}

func TestMemoryStore_ListNewestFirst(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveSale(ctx, storedSale(fmt.Sprintf("sale-%d", i))))
	}

	sales, err := store.ListSales(ctx, 0)
	require.NoError(t, err)
	require.Len(t, sales, 3)
	assert.Equal(t, "sale-2", sales[0].ID)
	assert.Equal(t, "sale-0", sales[2].ID)
}

func TestMemoryStore_ListHonorsLimit(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, store.SaveSale(ctx, storedSale(fmt.Sprintf("sale-%d", i))))
	}

	sales, err := store.ListSales(ctx, 2)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, "sale-4", sales[0].ID)
	assert.Equal(t, "sale-3", sales[1].ID)
}

func TestMemoryStore_Empty(t *testing.T) {
	store := NewMemoryStore()

	sales, err := store.ListSales(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, sales)
}

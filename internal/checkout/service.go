package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/welitoonl/tamagochi-pos/internal/cart"
	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// ErrEmptyCart is the refusal signal for finalizing an empty cart. It is not
// a fault: the caller surfaces a message and nothing changes.
var ErrEmptyCart = errors.New("cart is empty")

// Store accepts finalized sales for durable keeping.
// Consumers define this interface, not the Postgres implementation.
type Store interface {
	SaveSale(ctx context.Context, sale *domain.Sale) error
	ListSales(ctx context.Context, limit int) ([]domain.Sale, error)
}

// Service turns a populated cart session into an immutable sale.
type Service struct {
	store Store
	log   *zap.Logger
}

func NewService(store Store, log *zap.Logger) *Service {
	return &Service{
		store: store,
		log:   log,
	}
}

// Finalize snapshots the session into a closed sale attributed to operator,
// hands it to the store, and clears the session once the store accepted it.
// The sale id is a fresh UUID so two finalizations in the same clock tick
// can never collide.
func (s *Service) Finalize(ctx context.Context, session *cart.Session, operator domain.User) (*domain.Sale, error) {
	snap := session.Snapshot()
	if len(snap.Items) == 0 {
		return nil, ErrEmptyCart
	}

	saleID := uuid.New().String()
	items := make([]domain.SaleItem, 0, len(snap.Items))
	for _, item := range snap.Items {
		items = append(items, domain.SaleItem{
			ID:           uuid.New().String(),
			SaleID:       saleID,
			ProductID:    item.Product.ID,
			ProductName:  item.Product.Name,
			ProductPrice: item.Product.Price,
			Quantity:     item.Quantity,
			Subtotal:     item.Subtotal,
		})
	}

	sale := &domain.Sale{
		ID:            saleID,
		Items:         items,
		Total:         snap.Total,
		PaymentMethod: snap.PaymentMethod,
		Status:        domain.SaleClosed,
		OperatorID:    operator.ID,
		OperatorName:  operator.Name,
		CreatedAt:     time.Now(),
	}

	if err := s.store.SaveSale(ctx, sale); err != nil {
		return nil, fmt.Errorf("save sale: %w", err)
	}

	session.Clear()
	s.log.Info("sale finalized",
		zap.String("sale_id", sale.ID),
		zap.String("operator_id", operator.ID),
		zap.String("total", sale.Total.String()),
		zap.Int("items", len(sale.Items)),
	)
	return sale, nil
}

// Sales lists the most recent finalized sales.
func (s *Service) Sales(ctx context.Context, limit int) ([]domain.Sale, error) {
	return s.store.ListSales(ctx, limit)
}

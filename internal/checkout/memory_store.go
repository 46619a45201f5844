package checkout

import (
	"context"
	"sync"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// MemoryStore keeps finalized sales in memory. It backs the standalone mode
// where no database is configured; sales vanish on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	sales []domain.Sale
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) SaveSale(_ context.Context, sale *domain.Sale) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sales = append(s.sales, *sale)
	return nil
}

// ListSales returns sales newest first, at most limit of them. limit <= 0
// means no cap.
func (s *MemoryStore) ListSales(_ context.Context, limit int) ([]domain.Sale, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Sale, 0, len(s.sales))
	for i := len(s.sales) - 1; i >= 0; i-- {
		out = append(out, s.sales[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

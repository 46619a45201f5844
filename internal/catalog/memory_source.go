package catalog

import (
	"context"
	"sync"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// MemorySource holds the catalog in memory. It backs the standalone mode
// where no database is configured and serves as the snapshot provider in
// tests.
type MemorySource struct {
	mu       sync.RWMutex
	products []domain.Product
}

// NewMemorySource creates a source pre-loaded with the given products.
func NewMemorySource(products ...domain.Product) *MemorySource {
	s := &MemorySource{}
	s.Replace(products)
	return s
}

// Products returns a copy of the current snapshot in insertion order.
func (s *MemorySource) Products(_ context.Context) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// Put appends a product, or replaces it in place when the ID already exists.
func (s *MemorySource) Put(p domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.products {
		if s.products[i].ID == p.ID {
			s.products[i] = p
			return
		}
	}
	s.products = append(s.products, p)
}

// Replace swaps the whole snapshot.
func (s *MemorySource) Replace(products []domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = make([]domain.Product, len(products))
	copy(s.products, products)
}

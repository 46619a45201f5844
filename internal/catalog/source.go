package catalog

import (
	"context"
	"errors"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// ErrNotFound is returned when no product resolves for a scanned code.
var ErrNotFound = errors.New("product not found")

// Source supplies the current catalog snapshot. The lookup side treats it as
// read-only and does not manage its refresh cadence.
type Source interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

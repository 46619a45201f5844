package catalog

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// Lookup resolves products by scanned code or free-text query. Both reads
// are pure over the source snapshot; the optional cache only short-circuits
// repeated scans of the same code.
type Lookup struct {
	source Source
	cache  CodeCache
	sfg    singleflight.Group // collapses concurrent scans of one code
	log    *zap.Logger
}

// NewLookup creates a lookup service. cache may be nil when the terminal
// runs without Redis.
func NewLookup(source Source, cache CodeCache, log *zap.Logger) *Lookup {
	return &Lookup{
		source: source,
		cache:  cache,
		log:    log,
	}
}

// FindByCode returns the product whose barcode or EAN equals code, active or
// not. Matching is exact and case-sensitive; ErrNotFound when nothing
// resolves.
func (l *Lookup) FindByCode(ctx context.Context, code string) (*domain.Product, error) {
	v, err, _ := l.sfg.Do(code, func() (interface{}, error) {
		if l.cache != nil {
			product, errGet := l.cache.Get(ctx, code)
			if errGet == nil {
				return product, nil
			}
			if !errors.Is(errGet, ErrCacheMiss) {
				l.log.Warn("code cache get failed", zap.String("code", code), zap.Error(errGet))
			}
		}

		products, errSnap := l.source.Products(ctx)
		if errSnap != nil {
			return nil, errSnap
		}

		for i := range products {
			if products[i].MatchesCode(code) {
				found := products[i]
				if l.cache != nil {
					go func() {
						if errSet := l.cache.Set(context.Background(), code, &found); errSet != nil {
							l.log.Warn("code cache set failed", zap.String("code", code), zap.Error(errSet))
						}
					}()
				}
				return &found, nil
			}
		}

		return nil, ErrNotFound
	})

	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// Search returns every active product whose name or SKU contains query
// case-insensitively, or whose barcode contains it case-sensitively. An
// empty query matches the full active catalog, which is what the cashier
// screen shows before typing.
func (l *Lookup) Search(ctx context.Context, query string) ([]domain.Product, error) {
	products, err := l.source.Products(ctx)
	if err != nil {
		return nil, err
	}

	lower := strings.ToLower(query)
	matches := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !p.Active {
			continue
		}
		if strings.Contains(strings.ToLower(p.Name), lower) ||
			strings.Contains(strings.ToLower(p.SKU), lower) ||
			strings.Contains(p.Barcode, query) {
			matches = append(matches, p)
		}
	}
	return matches, nil
}

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/welitoonl/tamagochi-pos/internal/domain"
)

// ErrCacheMiss signals the code is not cached; the caller falls through to
// the snapshot scan.
var ErrCacheMiss = errors.New("cache miss")

// CodeCache caches barcode/EAN resolutions.
type CodeCache interface {
	Get(ctx context.Context, code string) (*domain.Product, error)
	Set(ctx context.Context, code string, product *domain.Product) error
	Delete(ctx context.Context, code string) error
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) Get(ctx context.Context, code string) (*domain.Product, error) {
	key := cacheKey(code)

	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var product domain.Product
	if err2 := json.Unmarshal(data, &product); err2 != nil {
		return nil, fmt.Errorf("unmarshal product failed: %w", err2)
	}

	return &product, nil
}

func (r RedisCache) Set(ctx context.Context, code string, product *domain.Product) error {
	key := cacheKey(code)
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("marshal product failed: %w", err)
	}

	// Jitter spreads expiry so a busy terminal does not refill every key at once.
	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter
	if ret := r.client.Set(ctx, key, string(data), ttl); ret.Err() != nil {
		return fmt.Errorf("redis set failed: %w", ret.Err())
	}
	return nil
}

func (r RedisCache) Delete(ctx context.Context, code string) error {
	if err := r.client.Del(ctx, cacheKey(code)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func cacheKey(code string) string {
	return fmt.Sprintf("product:code:%s", code)
}

// Package cached decorates catalog lookups with a shared cache. Only the
// product and category lists are cached; customer data always goes to the
// backend.
package cached

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/vino121095/valenmart-storefront/internal/pkg/cache"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/domain/entity"
	"github.com/vino121095/valenmart-storefront/internal/storefront/core/ports"
)

var _ ports.CatalogService = (*Catalog)(nil)

type Catalog struct {
	next  ports.CatalogService
	cache cache.Cache
	ttl   time.Duration
}

func NewCatalog(next ports.CatalogService, c cache.Cache, ttl time.Duration) *Catalog {
	return &Catalog{next: next, cache: c, ttl: ttl}
}

func (c *Catalog) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return cachedList(ctx, c, c.cache.GenerateKey("products", "all"), c.next.ListProducts)
}

func (c *Catalog) ListCategories(ctx context.Context) ([]entity.Category, error) {
	return cachedList(ctx, c, c.cache.GenerateKey("categories", "all"), c.next.ListCategories)
}

// cachedList serves key from the cache, falling back to load on a miss or a
// cache error. Cache failures are logged and never returned.
func cachedList[T any](ctx context.Context, c *Catalog, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	raw, ok, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
	}
	if ok {
		var out []T
		if err := json.Unmarshal(raw, &out); err == nil {
			return out, nil
		}
		slog.WarnContext(ctx, "catalog cache entry corrupt", "key", key)
	}

	out, err := load(ctx)
	if err != nil {
		return nil, err
	}

	raw, err = json.Marshal(out)
	if err == nil {
		err = c.cache.Set(ctx, key, raw, c.ttl)
	}
	if err != nil {
		slog.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
	}
	return out, nil
}

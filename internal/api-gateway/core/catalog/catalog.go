package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports"
	"github.com/jcmexdev/venue-tabs/internal/pkg/cache"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog serves the Order Service product list through a cache. Cache errors
// are logged and the service is asked directly.
type Catalog struct {
	svc   ports.OrderService
	cache cache.Cache
	ttl   time.Duration
}

func New(svc ports.OrderService, c cache.Cache, ttl time.Duration) *Catalog {
	return &Catalog{svc: svc, cache: c, ttl: ttl}
}

func (c *Catalog) Products(ctx context.Context) ([]entity.Product, error) {
	key := c.cache.GenerateKey("products", "all")

	if raw, err := c.cache.Get(ctx, key); err != nil {
		slog.WarnContext(ctx, "catalog cache read failed", "key", key, "error", err)
	} else if raw != "" {
		var products []entity.Product
		if err := json.Unmarshal([]byte(raw), &products); err == nil {
			return products, nil
		}
		slog.WarnContext(ctx, "catalog cache entry unreadable", "key", key)
	}

	products, err := c.svc.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	if b, err := json.Marshal(products); err == nil {
		if err := c.cache.Set(ctx, key, b, c.ttl); err != nil {
			slog.WarnContext(ctx, "catalog cache write failed", "key", key, "error", err)
		}
	}
	return products, nil
}

package repo

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"storefront-order-system/shared/pkg/cache"
	"storefront-order-system/shared/pkg/models"
)

const (
	keyProducts      = "catalog:products"
	keyProductPrefix = "catalog:product:"
)

// BytesCache is satisfied by *cache.Redis.
type BytesCache interface {
	GetBytes(ctx context.Context, key string) ([]byte, error)
	SetBytes(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// ProductsCached reads through the cache to Next. A cache outage only
// costs latency: every cache error falls back to Next.
type ProductsCached struct {
	Next  Catalog
	Cache BytesCache
	TTL   time.Duration
	Log   zerolog.Logger
}

func (c *ProductsCached) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if c.lookup(ctx, keyProducts, &products) {
		return products, nil
	}

	products, err := c.Next.List(ctx)
	if err != nil {
		return nil, err
	}
	c.store(ctx, keyProducts, products)
	return products, nil
}

func (c *ProductsCached) Get(ctx context.Context, id int64) (models.Product, error) {
	key := keyProductPrefix + strconv.FormatInt(id, 10)

	var p models.Product
	if c.lookup(ctx, key, &p) {
		return p, nil
	}

	p, err := c.Next.Get(ctx, id)
	if err != nil {
		return models.Product{}, err
	}
	c.store(ctx, key, p)
	return p, nil
}

func (c *ProductsCached) lookup(ctx context.Context, key string, dst any) bool {
	b, err := c.Cache.GetBytes(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			c.Log.Warn().Err(err).Str("key", key).Msg("catalog cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		c.Log.Warn().Err(err).Str("key", key).Msg("catalog cache entry corrupt")
		return false
	}
	return true
}

func (c *ProductsCached) store(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		c.Log.Warn().Err(err).Str("key", key).Msg("catalog cache encode failed")
		return
	}
	if err := c.Cache.SetBytes(ctx, key, b, c.TTL); err != nil {
		c.Log.Warn().Err(err).Str("key", key).Msg("catalog cache write failed")
	}
}

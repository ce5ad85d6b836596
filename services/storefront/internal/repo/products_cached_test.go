package repo

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-order-system/shared/pkg/cache"
	"storefront-order-system/shared/pkg/models"
)

type memCache struct {
	data   map[string][]byte
	ttls   map[string]time.Duration
	getErr error
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memCache) GetBytes(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	b, ok := m.data[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return b, nil
}

func (m *memCache) SetBytes(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

type countingCatalog struct {
	Catalog
	lists int
	gets  int
}

func (c *countingCatalog) List(ctx context.Context) ([]models.Product, error) {
	c.lists++
	return c.Catalog.List(ctx)
}

func (c *countingCatalog) Get(ctx context.Context, id int64) (models.Product, error) {
	c.gets++
	return c.Catalog.Get(ctx, id)
}

func TestProductsCached_ListReadThrough(t *testing.T) {
	next := &countingCatalog{Catalog: NewStaticCatalog()}
	mc := newMemCache()
	c := &ProductsCached{Next: next, Cache: mc, TTL: time.Minute, Log: zerolog.New(io.Discard)}

	first, err := c.List(context.Background())
	require.NoError(t, err)
	second, err := c.List(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, next.lists)
	assert.Equal(t, time.Minute, mc.ttls[keyProducts])
	require.Len(t, second, len(first))
	assert.Equal(t, first[0].Title, second[0].Title)
	assert.True(t, first[0].Price.Equal(second[0].Price))
}

func TestProductsCached_GetReadThrough(t *testing.T) {
	next := &countingCatalog{Catalog: NewStaticCatalog()}
	c := &ProductsCached{Next: next, Cache: newMemCache(), TTL: time.Minute, Log: zerolog.New(io.Discard)}

	for i := 0; i < 3; i++ {
		p, err := c.Get(context.Background(), 2)
		require.NoError(t, err)
		assert.Equal(t, int64(2), p.ID)
	}
	assert.Equal(t, 1, next.gets)
}

func TestProductsCached_NotFoundNotCached(t *testing.T) {
	next := &countingCatalog{Catalog: NewStaticCatalog()}
	mc := newMemCache()
	c := &ProductsCached{Next: next, Cache: mc, TTL: time.Minute, Log: zerolog.New(io.Discard)}

	_, err := c.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Empty(t, mc.data)
}

func TestProductsCached_CacheDownFallsBack(t *testing.T) {
	next := &countingCatalog{Catalog: NewStaticCatalog()}
	mc := newMemCache()
	mc.getErr = errors.New("dial tcp 127.0.0.1:6379: connection refused")
	c := &ProductsCached{Next: next, Cache: mc, TTL: time.Minute, Log: zerolog.New(io.Discard)}

	products, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, products)
	assert.Equal(t, 1, next.lists)
}

func TestProductsCached_CorruptEntry(t *testing.T) {
	next := &countingCatalog{Catalog: NewStaticCatalog()}
	mc := newMemCache()
	mc.data[keyProducts] = []byte("{not json")
	c := &ProductsCached{Next: next, Cache: mc, TTL: time.Minute, Log: zerolog.New(io.Discard)}

	products, err := c.List(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, products)
	assert.Equal(t, 1, next.lists)
}

func TestStaticCatalog(t *testing.T) {
	c := NewStaticCatalog()

	products, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, products, len(SeedProducts()))

	products[0].Title = "mutated"
	again, _ := c.List(context.Background())
	assert.NotEqual(t, "mutated", again[0].Title)

	_, err = c.Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

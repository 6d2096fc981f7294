package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/domain/entity"
	"github.com/jcmexdev/venue-tabs/internal/api-gateway/core/ports/portsmock"
	"github.com/jcmexdev/venue-tabs/internal/pkg/cache"
)

type brokenCache struct{}

func (brokenCache) Set(context.Context, string, interface{}, time.Duration) error {
	return errors.New("down")
}
func (brokenCache) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (brokenCache) GenerateKey(op, key string) string            { return op + ":" + key }

var products = []entity.Product{
	{ID: "1", Name: "Tea", UnitPrice: decimal.RequireFromString("25.5")},
	{ID: "2", Name: "Cake", UnitPrice: decimal.RequireFromString("60")},
}

func TestProductsAreCached(t *testing.T) {
	svc := new(portsmock.OrderService)
	svc.On("ListProducts", mock.Anything).Return(products, nil).Once()

	c := New(svc, cache.NewMemoryCache("test"), time.Minute)

	first, err := c.Products(context.Background())
	require.NoError(t, err)
	second, err := c.Products(context.Background())
	require.NoError(t, err)

	require.Len(t, second, 2)
	assert.Equal(t, first[0].Name, second[0].Name)
	assert.True(t, second[0].UnitPrice.Equal(decimal.RequireFromString("25.5")))
	svc.AssertNumberOfCalls(t, "ListProducts", 1)
}

func TestBrokenCacheFallsBackToService(t *testing.T) {
	svc := new(portsmock.OrderService)
	svc.On("ListProducts", mock.Anything).Return(products, nil)

	c := New(svc, brokenCache{}, time.Minute)
	got, err := c.Products(context.Background())
	require.NoError(t, err)
	assert.Equal(t, products, got)
}

func TestServiceError(t *testing.T) {
	svc := new(portsmock.OrderService)
	boom := errors.New("boom")
	svc.On("ListProducts", mock.Anything).Return(nil, boom)

	_, err := New(svc, cache.NewMemoryCache("test"), time.Minute).Products(context.Background())
	assert.ErrorIs(t, err, boom)
}

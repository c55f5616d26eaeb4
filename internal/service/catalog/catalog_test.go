package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/service/catalog"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
)

func TestService_List_SandwichesFirst(t *testing.T) {
	svc := catalog.NewService(memory.NewSeededProductRepository())

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 5)

	for i, p := range products {
		if i < 3 {
			assert.Equal(t, domain.ProductTypeSandwich, p.Type, "position %d", i)
		} else {
			assert.Equal(t, domain.ProductTypeExtra, p.Type, "position %d", i)
		}
	}
}

func TestService_ByType(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(memory.NewSeededProductRepository())

	sandwiches, err := svc.Sandwiches(ctx)
	require.NoError(t, err)
	assert.Len(t, sandwiches, 3)

	extras, err := svc.Extras(ctx)
	require.NoError(t, err)
	require.Len(t, extras, 2)
	assert.Equal(t, "Fries", extras[0].Name)
	assert.Equal(t, "Soft Drink", extras[1].Name)
}

func TestService_Get(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(memory.NewProductRepository(domain.Product{
		ID: "p-1", Name: "Onion Rings", Price: decimal.RequireFromString("3.00"), Type: domain.ProductTypeExtra,
	}))

	p, err := svc.Get(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, "Onion Rings", p.Name)

	_, err = svc.Get(ctx, "missing")
	assert.True(t, errors.Is(err, domain.ErrProductNotFound))
}

type failingProducts struct{ domain.ProductRepository }

func (failingProducts) List(context.Context) ([]domain.Product, error) {
	return nil, errors.New("connection reset")
}

func TestService_List_PropagatesError(t *testing.T) {
	svc := catalog.NewService(failingProducts{})

	_, err := svc.List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
}

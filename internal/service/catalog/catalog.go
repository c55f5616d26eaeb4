package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// Service отдаёт меню.
type Service struct {
	products domain.ProductRepository
}

// NewService создаёт сервис меню.
func NewService(products domain.ProductRepository) *Service {
	return &Service{products: products}
}

// List возвращает все продукты: сначала сэндвичи, затем дополнения.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Type.Rank() < products[j].Type.Rank()
	})
	return products, nil
}

// Sandwiches возвращает только сэндвичи.
func (s *Service) Sandwiches(ctx context.Context) ([]domain.Product, error) {
	return s.byType(ctx, domain.ProductTypeSandwich)
}

// Extras возвращает дополнения.
func (s *Service) Extras(ctx context.Context) ([]domain.Product, error) {
	return s.byType(ctx, domain.ProductTypeExtra)
}

// Get возвращает продукт по идентификатору.
func (s *Service) Get(ctx context.Context, id string) (domain.Product, error) {
	return s.products.Get(ctx, id)
}

func (s *Service) byType(ctx context.Context, t domain.ProductType) ([]domain.Product, error) {
	products, err := s.products.ListByType(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("list %s products: %w", t, err)
	}
	return products, nil
}

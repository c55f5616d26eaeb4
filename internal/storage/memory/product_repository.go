package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// productRepositoryInMemory хранит меню в памяти.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий меню, заполненный переданными продуктами.
func NewProductRepository(products ...domain.Product) domain.ProductRepository {
	repo := &productRepositoryInMemory{
		items: make(map[string]domain.Product, len(products)),
	}
	for _, p := range products {
		repo.items[p.ID] = p
	}
	return repo
}

// NewSeededProductRepository возвращает репозиторий со стартовым меню.
func NewSeededProductRepository() domain.ProductRepository {
	return NewProductRepository(domain.DefaultMenu()...)
}

// Get возвращает продукт или ErrProductNotFound.
func (r *productRepositoryInMemory) Get(_ context.Context, id string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return p, nil
}

// List возвращает все продукты: сначала сэндвичи, затем дополнения, внутри типа по имени.
func (r *productRepositoryInMemory) List(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, p := range r.items {
		result = append(result, p)
	}
	sortProducts(result)
	return result, nil
}

// ListByType возвращает продукты одного типа, отсортированные по имени.
func (r *productRepositoryInMemory) ListByType(_ context.Context, t domain.ProductType) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, p := range r.items {
		if p.Type == t {
			result = append(result, p)
		}
	}
	sortProducts(result)
	return result, nil
}

func sortProducts(products []domain.Product) {
	sort.Slice(products, func(i, j int) bool {
		if ri, rj := products[i].Type.Rank(), products[j].Type.Rank(); ri != rj {
			return ri < rj
		}
		return products[i].Name < products[j].Name
	})
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)

package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// Create сохраняет новый заказ, если ID ещё не занят.
func (r *orderRepositoryInMemory) Create(_ context.Context, order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.ID]; exists {
		return domain.ErrOrderAlreadyExists
	}
	// Сохраняем копию, чтобы избежать непредсказуемых мутаций извне.
	r.items[order.ID] = cloneOrder(order)
	return nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(_ context.Context, id string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// List возвращает все заказы, новые первыми.
func (r *orderRepositoryInMemory) List(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		result = append(result, cloneOrder(order))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// Update применяет удаление и вставку позиций вместе с новыми суммами.
// Состояние меняется только если проверка всех изменений прошла успешно.
func (r *orderRepositoryInMemory) Update(_ context.Context, order domain.Order, changes domain.ItemChanges) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[order.ID]
	if !ok {
		return domain.ErrOrderNotFound
	}

	retired := make(map[string]struct{}, len(changes.Retired))
	for _, item := range changes.Retired {
		retired[item.ID] = struct{}{}
	}

	items := make([]domain.OrderItem, 0, len(current.Items)+len(changes.Attached))
	for _, item := range current.Items {
		if _, drop := retired[item.ID]; drop {
			delete(retired, item.ID)
			continue
		}
		items = append(items, item)
	}
	if len(retired) > 0 {
		return domain.ErrOrderItemNotFound
	}
	for _, item := range changes.Attached {
		item.OrderID = order.ID
		items = append(items, item)
	}

	current.Items = items
	current.TotalAmount = order.TotalAmount
	current.DiscountPercent = order.DiscountPercent
	current.FinalAmount = order.FinalAmount
	current.UpdatedAt = order.UpdatedAt
	if current.UpdatedAt.IsZero() {
		current.UpdatedAt = time.Now().UTC()
	}

	r.items[order.ID] = cloneOrder(current)
	return nil
}

// Delete удаляет заказ вместе с позициями.
func (r *orderRepositoryInMemory) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return nil
}

func cloneOrder(src domain.Order) domain.Order {
	dst := src
	dst.Items = append([]domain.OrderItem(nil), src.Items...)
	return dst
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)

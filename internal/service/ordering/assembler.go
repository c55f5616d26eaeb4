package ordering

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/metrics"
)

// Assembler собирает, переоценивает и удаляет заказы.
// Состояние запроса (набор изменений позиций) живёт только на стеке вызова.
type Assembler struct {
	products domain.ProductRepository
	orders   domain.OrderRepository
	timeline domain.TimelineRepository
	outbox   domain.OutboxRepository
	metrics  *metrics.OrderMetrics
	logger   *log.Entry
	now      func() time.Time
	newID    func() string
}

// Option настраивает Assembler.
type Option func(*Assembler)

// WithTimeline включает запись событий жизненного цикла заказа.
func WithTimeline(repo domain.TimelineRepository) Option {
	return func(a *Assembler) {
		a.timeline = repo
	}
}

// WithOutbox включает постановку событий заказа в transactional outbox.
func WithOutbox(repo domain.OutboxRepository) Option {
	return func(a *Assembler) {
		a.outbox = repo
	}
}

// WithMetrics задаёт метрики сервиса.
func WithMetrics(m *metrics.OrderMetrics) Option {
	return func(a *Assembler) {
		a.metrics = m
	}
}

// WithLogger задаёт логгер.
func WithLogger(logger *log.Entry) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// WithIDGenerator подменяет генератор идентификаторов (для тестов).
func WithIDGenerator(newID func() string) Option {
	return func(a *Assembler) {
		if newID != nil {
			a.newID = newID
		}
	}
}

// NewAssembler создаёт сервис заказов поверх репозиториев продуктов и заказов.
func NewAssembler(products domain.ProductRepository, orders domain.OrderRepository, opts ...Option) *Assembler {
	a := &Assembler{
		products: products,
		orders:   orders,
		logger:   log.WithField("component", "ordering"),
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// CreateOrder собирает заказ из запрошенных позиций, считает скидку и сохраняет его атомарно.
// Проверку повторяющихся категорий вызывающая сторона выполняет заранее через HasDuplicateCategory.
func (a *Assembler) CreateOrder(ctx context.Context, requests []domain.ItemRequest) (domain.Order, error) {
	started := time.Now()
	defer func() { a.metrics.RecordOperationDuration(metrics.OperationCreate, time.Since(started)) }()

	if len(requests) == 0 {
		return domain.Order{}, domain.ErrItemsRequired
	}

	now := a.now()
	order := domain.Order{
		ID:        a.newID(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	priced := make([]domain.PricedItem, 0, len(requests))
	for _, req := range requests {
		product, err := a.lookupProduct(ctx, req.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		order.Items = append(order.Items, a.newItem(order.ID, product, req.Quantity, now))
		priced = append(priced, domain.PricedItem{Product: product, Quantity: req.Quantity})
	}

	order.ApplyPricing(domain.PriceItems(priced))
	if err := invariantsError(order); err != nil {
		return domain.Order{}, err
	}

	if err := a.orders.Create(ctx, order); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}

	a.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"items":    len(order.Items),
		"discount": order.DiscountPercent,
		"final":    order.FinalAmount.StringFixed(2),
	}).Info("order created")

	a.metrics.RecordOrderCreated(order.DiscountPercent, order.FinalAmount)
	a.emitEvent(ctx, order, domain.EventTypeOrderCreated, domain.TimelineOrderCreated, "")
	return order, nil
}

// UpdateOrder заменяет набор позиций заказа: все текущие позиции выводятся из заказа,
// новые присоединяются, суммы пересчитываются. Изменения применяются одной транзакцией.
func (a *Assembler) UpdateOrder(ctx context.Context, orderID string, requests []domain.ItemRequest) (domain.Order, error) {
	started := time.Now()
	defer func() { a.metrics.RecordOperationDuration(metrics.OperationUpdate, time.Since(started)) }()

	order, err := a.orders.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("get order %s: %w", orderID, err)
	}
	if len(requests) == 0 {
		return domain.Order{}, domain.ErrItemsRequired
	}

	var changes domain.ItemChanges
	for _, item := range order.Items {
		changes.Retire(item)
	}

	now := a.now()
	priced := make([]domain.PricedItem, 0, len(requests))
	for _, req := range requests {
		product, err := a.lookupProduct(ctx, req.ProductID)
		if err != nil {
			return domain.Order{}, err
		}
		changes.Attach(a.newItem(order.ID, product, req.Quantity, now))
		priced = append(priced, domain.PricedItem{Product: product, Quantity: req.Quantity})
	}

	order.Items = append([]domain.OrderItem(nil), changes.Attached...)
	order.ApplyPricing(domain.PriceItems(priced))
	order.UpdatedAt = now
	if err := invariantsError(order); err != nil {
		return domain.Order{}, err
	}

	if err := a.orders.Update(ctx, order, changes); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("update order %s: %w", orderID, err)
	}

	a.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"retired":  len(changes.Retired),
		"attached": len(changes.Attached),
		"discount": order.DiscountPercent,
		"final":    order.FinalAmount.StringFixed(2),
	}).Info("order updated")

	a.metrics.RecordOrderUpdated(order.DiscountPercent, order.FinalAmount)
	a.emitEvent(ctx, order, domain.EventTypeOrderUpdated, domain.TimelineOrderUpdated,
		fmt.Sprintf("replaced %d items with %d", len(changes.Retired), len(changes.Attached)))
	return order, nil
}

// DeleteOrder удаляет заказ вместе с позициями.
func (a *Assembler) DeleteOrder(ctx context.Context, orderID string) error {
	started := time.Now()
	defer func() { a.metrics.RecordOperationDuration(metrics.OperationDelete, time.Since(started)) }()

	if err := a.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("delete order %s: %w", orderID, err)
	}

	a.logger.WithField("order_id", orderID).Info("order deleted")

	a.metrics.RecordOrderDeleted()
	a.emitEvent(ctx, domain.Order{ID: orderID, UpdatedAt: a.now()}, domain.EventTypeOrderDeleted, domain.TimelineOrderDeleted, "")
	return nil
}

// HasDuplicateCategory сообщает, что набор позиций нельзя принять: продукт не найден
// либо две позиции относятся к одной категории. Ошибки хранилища возвращаются как есть.
func (a *Assembler) HasDuplicateCategory(ctx context.Context, requests []domain.ItemRequest) (bool, error) {
	started := time.Now()
	defer func() { a.metrics.RecordOperationDuration(metrics.OperationDuplicateCheck, time.Since(started)) }()

	seen := make(map[domain.Category]struct{}, len(requests))
	for _, req := range requests {
		product, err := a.products.Get(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrProductNotFound) {
				a.metrics.RecordDuplicateRejected()
				return true, nil
			}
			return false, fmt.Errorf("get product %s: %w", req.ProductID, err)
		}

		category := domain.ResolveCategory(product)
		if _, dup := seen[category]; dup {
			a.metrics.RecordDuplicateRejected()
			return true, nil
		}
		seen[category] = struct{}{}
	}
	return false, nil
}

// GetOrder возвращает заказ по идентификатору.
func (a *Assembler) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	return a.orders.Get(ctx, orderID)
}

// ListOrders возвращает все заказы.
func (a *Assembler) ListOrders(ctx context.Context) ([]domain.Order, error) {
	return a.orders.List(ctx)
}

// Timeline возвращает события жизненного цикла существующего заказа.
func (a *Assembler) Timeline(ctx context.Context, orderID string) ([]domain.TimelineEvent, error) {
	if _, err := a.orders.Get(ctx, orderID); err != nil {
		return nil, err
	}
	if a.timeline == nil {
		return []domain.TimelineEvent{}, nil
	}
	return a.timeline.List(ctx, orderID)
}

func (a *Assembler) lookupProduct(ctx context.Context, productID string) (domain.Product, error) {
	product, err := a.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return domain.Product{}, fmt.Errorf("product %s: %w", productID, domain.ErrProductNotFound)
		}
		return domain.Product{}, fmt.Errorf("get product %s: %w", productID, err)
	}
	return product, nil
}

func (a *Assembler) newItem(orderID string, product domain.Product, qty int, now time.Time) domain.OrderItem {
	return domain.OrderItem{
		ID:        a.newID(),
		OrderID:   orderID,
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
		Category:  domain.ResolveCategory(product),
		Quantity:  qty,
		CreatedAt: now,
	}
}

func invariantsError(order domain.Order) error {
	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

const (
	orderColumns = `id, total_amount::text, discount_percent::int, final_amount::text, created_at, updated_at`
	itemColumns  = `id, order_id, product_id, name, unit_price::text, category, quantity, created_at`

	pgUniqueViolation     = "23505"
	pgInvalidTextSyntax   = "22P02"
	pgForeignKeyViolation = "23503"
)

type orderRepository struct {
	db DBTX
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(db DBTX) domain.OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (
			id, total_amount, discount_percent, final_amount, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6)
	`,
		order.ID,
		formatMoney(order.TotalAmount),
		order.DiscountPercent,
		formatMoney(order.FinalAmount),
		order.CreatedAt,
		order.UpdatedAt,
	); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrOrderAlreadyExists
		}
		return fmt.Errorf("insert order: %w", err)
	}

	if err := insertItems(ctx, tx, order.ID, order.Items); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create order: %w", err)
	}

	return nil
}

func (r *orderRepository) Get(ctx context.Context, id string) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	order, err := scanOrder(r.db.QueryRow(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	items, err := r.loadItems(ctx, []string{order.ID})
	if err != nil {
		return domain.Order{}, err
	}
	order.Items = items[order.ID]

	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	orders, err := collectOrders(rows)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	ids := make([]string, 0, len(orders))
	for _, order := range orders {
		ids = append(ids, order.ID)
	}
	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = items[orders[i].ID]
	}

	return orders, nil
}

// Update перезаписывает суммы заказа и применяет изменения позиций в одной транзакции.
func (r *orderRepository) Update(ctx context.Context, order domain.Order, changes domain.ItemChanges) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
		UPDATE orders
		SET total_amount = $2,
		    discount_percent = $3,
		    final_amount = $4,
		    updated_at = $5
		WHERE id = $1
	`,
		order.ID,
		formatMoney(order.TotalAmount),
		order.DiscountPercent,
		formatMoney(order.FinalAmount),
		order.UpdatedAt,
	)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	for _, id := range changes.RetiredIDs() {
		tag, err := tx.Exec(ctx, `
			DELETE FROM order_items
			WHERE id = $1 AND order_id = $2
		`, id, order.ID)
		if err != nil {
			return fmt.Errorf("delete order item: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrOrderItemNotFound
		}
	}

	if err := insertItems(ctx, tx, order.ID, changes.Attached); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit update order: %w", err)
	}

	return nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		if isInvalidUUID(err) {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

// loadItems загружает позиции сразу для набора заказов и группирует их по order_id.
func (r *orderRepository) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM order_items
		WHERE order_id = ANY($1::uuid[])
		ORDER BY created_at ASC, id ASC
	`, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("select order items: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.OrderItem, len(orderIDs))
	for rows.Next() {
		var (
			item        domain.OrderItem
			unitPrice   string
			categoryRaw string
		)
		if err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.Name,
			&unitPrice,
			&categoryRaw,
			&item.Quantity,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if item.UnitPrice, err = parseMoney(unitPrice); err != nil {
			return nil, fmt.Errorf("order item %s price: %w", item.ID, err)
		}
		item.Category = domain.Category(categoryRaw)
		result[item.OrderID] = append(result[item.OrderID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return result, nil
}

func insertItems(ctx context.Context, tx pgx.Tx, orderID string, items []domain.OrderItem) error {
	for _, item := range items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (
				id, order_id, product_id, name, unit_price, category, quantity, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
			item.ID,
			orderID,
			item.ProductID,
			item.Name,
			formatMoney(item.UnitPrice),
			string(item.Category),
			item.Quantity,
			item.CreatedAt,
		); err != nil {
			if isForeignKeyViolation(err) {
				return fmt.Errorf("product %s: %w", item.ProductID, domain.ErrProductNotFound)
			}
			return fmt.Errorf("insert order item: %w", err)
		}
	}
	return nil
}

func collectOrders(rows pgx.Rows) ([]domain.Order, error) {
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	return orders, nil
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var (
		order    domain.Order
		totalRaw string
		finalRaw string
	)
	if err := row.Scan(
		&order.ID,
		&totalRaw,
		&order.DiscountPercent,
		&finalRaw,
		&order.CreatedAt,
		&order.UpdatedAt,
	); err != nil {
		return domain.Order{}, err
	}

	var err error
	if order.TotalAmount, err = parseMoney(totalRaw); err != nil {
		return domain.Order{}, fmt.Errorf("order %s total: %w", order.ID, err)
	}
	if order.FinalAmount, err = parseMoney(finalRaw); err != nil {
		return domain.Order{}, fmt.Errorf("order %s final: %w", order.ID, err)
	}
	order.CreatedAt = order.CreatedAt.UTC()
	order.UpdatedAt = order.UpdatedAt.UTC()

	return order, nil
}

// formatMoney передаёт деньги в NUMERIC(10,2) текстом, без потери точности.
func formatMoney(v decimal.Decimal) string {
	return v.StringFixed(2)
}

func parseMoney(raw string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse money %q: %w", raw, err)
	}
	return v, nil
}

func isUniqueViolation(err error) bool {
	return hasPgCode(err, pgUniqueViolation)
}

func isForeignKeyViolation(err error) bool {
	return hasPgCode(err, pgForeignKeyViolation)
}

// isInvalidUUID — идентификатор не разобрался как UUID, такой записи быть не может.
func isInvalidUUID(err error) bool {
	return hasPgCode(err, pgInvalidTextSyntax)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

var _ domain.OrderRepository = (*orderRepository)(nil)

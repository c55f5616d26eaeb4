package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// SeedProducts загружает меню в таблицу products. Повторный запуск обновляет
// название, цену и тип по id, поэтому seed можно выполнять на каждом старте.
func SeedProducts(ctx context.Context, db DBTX, products []domain.Product) (int, error) {
	for _, p := range products {
		if errs := p.Validate(); len(errs) > 0 {
			return 0, fmt.Errorf("seed product %q: %w", p.Name, errors.Join(errs...))
		}
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, p := range products {
		if _, err := tx.Exec(ctx, `
			INSERT INTO products (id, name, price, type)
			VALUES ($1,$2,$3,$4)
			ON CONFLICT (id) DO UPDATE
			SET name = EXCLUDED.name,
			    price = EXCLUDED.price,
			    type = EXCLUDED.type
		`, p.ID, p.Name, formatMoney(p.Price), string(p.Type)); err != nil {
			return 0, fmt.Errorf("upsert product %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit seed tx: %w", err)
	}

	return len(products), nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

const productColumns = `id, name, price::text, type`

type productRepository struct {
	db DBTX
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(db DBTX) domain.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Get(ctx context.Context, id string) (domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	product, err := scanProduct(r.db.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidUUID(err) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("select product: %w", err)
	}

	return product, nil
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		ORDER BY CASE type WHEN 'Sandwich' THEN 0 ELSE 1 END, name
	`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

func (r *productRepository) ListByType(ctx context.Context, t domain.ProductType) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE type = $1
		ORDER BY name
	`, string(t))
	if err != nil {
		return nil, fmt.Errorf("list products by type: %w", err)
	}
	return collectProducts(rows)
}

func collectProducts(rows pgx.Rows) ([]domain.Product, error) {
	defer rows.Close()

	products := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (domain.Product, error) {
	var (
		product  domain.Product
		priceRaw string
		typeRaw  string
	)
	if err := row.Scan(&product.ID, &product.Name, &priceRaw, &typeRaw); err != nil {
		return domain.Product{}, err
	}

	price, err := parseMoney(priceRaw)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s price: %w", product.ID, err)
	}
	product.Price = price
	product.Type = domain.ProductType(typeRaw)

	return product, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)

package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ProductType задаёт тип продукта в меню.
type ProductType string

const (
	// ProductTypeSandwich — основное блюдо (бургер/сэндвич).
	ProductTypeSandwich ProductType = "Sandwich"
	// ProductTypeExtra — дополнение к заказу: картофель, напитки и т.п.
	ProductTypeExtra ProductType = "Extra"
)

// Valid проверяет, что тип относится к поддерживаемым значениям.
func (t ProductType) Valid() bool {
	switch t {
	case ProductTypeSandwich, ProductTypeExtra:
		return true
	default:
		return false
	}
}

// Rank задаёт порядок типов при выдаче меню: сначала сэндвичи, затем дополнения.
func (t ProductType) Rank() int {
	switch t {
	case ProductTypeSandwich:
		return 0
	case ProductTypeExtra:
		return 1
	default:
		return 2
	}
}

// ParseProductType разбирает тип продукта без учёта регистра.
func ParseProductType(raw string) (ProductType, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sandwich":
		return ProductTypeSandwich, nil
	case "extra":
		return ProductTypeExtra, nil
	default:
		return "", ErrProductTypeInvalid
	}
}

// Product — позиция меню. После загрузки в хранилище используется только на чтение.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Type  ProductType
}

// Validate проверяет атрибуты продукта и возвращает список замечаний.
func (p Product) Validate() []error {
	var errs []error

	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, ErrProductNameRequired)
	}
	if p.Price.IsNegative() {
		errs = append(errs, ErrItemPriceInvalid)
	}
	// Цена хранится как NUMERIC(10,2): больше двух знаков после запятой не допускаем.
	if !p.Price.Equal(p.Price.Round(2)) {
		errs = append(errs, ErrPricePrecision)
	}
	if !p.Type.Valid() {
		errs = append(errs, ErrProductTypeInvalid)
	}

	return errs
}

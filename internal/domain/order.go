package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ItemRequest — запрошенная клиентом позиция: продукт и количество.
type ItemRequest struct {
	ProductID string
	Quantity  int
}

// OrderItem представляет одну позицию заказа.
type OrderItem struct {
	// ID позиции: у каждой строки своя идентичность, при обновлении строки заменяются целиком.
	ID      string
	OrderID string
	// ProductID — ссылка на продукт меню.
	ProductID string
	// Name, UnitPrice и Category денормализованы для отображения.
	Name      string
	UnitPrice decimal.Decimal
	Category  Category
	Quantity  int
	CreatedAt time.Time
}

// LineTotal возвращает стоимость позиции.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order агрегирует позиции заказа и результат расчёта скидки.
type Order struct {
	ID              string
	Items           []OrderItem
	TotalAmount     decimal.Decimal
	DiscountPercent int
	FinalAmount     decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ApplyPricing переносит результат расчёта в заказ.
func (o *Order) ApplyPricing(p Pricing) {
	o.TotalAmount = p.Total
	o.DiscountPercent = p.DiscountPercent
	o.FinalAmount = p.Final
}

// ValidateInvariants проверяет базовые инварианты заказа и возвращает список замечаний.
func (o *Order) ValidateInvariants() []error {
	var errs []error

	if len(o.Items) == 0 {
		errs = append(errs, ErrItemsRequired)
	}

	calc := decimal.Zero
	for _, item := range o.Items {
		if item.ProductID == "" {
			errs = append(errs, ErrProductIDRequired)
		}
		if item.Quantity <= 0 {
			errs = append(errs, ErrItemQtyInvalid)
		}
		if item.UnitPrice.IsNegative() {
			errs = append(errs, ErrItemPriceInvalid)
		}
		calc = calc.Add(item.LineTotal())
	}
	if !calc.Equal(o.TotalAmount) {
		errs = append(errs, ErrAmountMismatch)
	}

	if !ValidDiscountPercent(o.DiscountPercent) {
		errs = append(errs, ErrInvalidDiscount)
	} else if !o.FinalAmount.Equal(DiscountedAmount(o.TotalAmount, o.DiscountPercent)) {
		errs = append(errs, ErrFinalAmountMismatch)
	}

	return errs
}

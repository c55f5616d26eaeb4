package domain

import "github.com/shopspring/decimal"

// Уровни комбо-скидки в процентах.
const (
	DiscountNone              = 0
	DiscountSandwichFries     = 10
	DiscountSandwichSoftDrink = 15
	DiscountFullCombo         = 20
)

// moneyPlaces — точность денежных сумм.
const moneyPlaces = 2

// PricedItem — продукт с количеством, поданный на вход расчёту скидки.
type PricedItem struct {
	Product  Product
	Quantity int
}

// Pricing — результат расчёта стоимости заказа.
type Pricing struct {
	Total           decimal.Decimal
	DiscountPercent int
	Final           decimal.Decimal
}

// ValidDiscountPercent сообщает, является ли значение одним из допустимых уровней скидки.
func ValidDiscountPercent(pct int) bool {
	switch pct {
	case DiscountNone, DiscountSandwichFries, DiscountSandwichSoftDrink, DiscountFullCombo:
		return true
	default:
		return false
	}
}

// DiscountPercent выбирает уровень скидки по набору категорий. Скидки не суммируются.
func DiscountPercent(hasSandwich, hasFries, hasSoftDrink bool) int {
	switch {
	case hasSandwich && hasFries && hasSoftDrink:
		return DiscountFullCombo
	case hasSandwich && hasSoftDrink:
		return DiscountSandwichSoftDrink
	case hasSandwich && hasFries:
		return DiscountSandwichFries
	default:
		return DiscountNone
	}
}

// OrderTotal возвращает сумму unitPrice * quantity по всем позициям.
func OrderTotal(items []PricedItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// DiscountedAmount применяет процент скидки к сумме и округляет до копеек
// (половина округляется от нуля).
func DiscountedAmount(total decimal.Decimal, pct int) decimal.Decimal {
	return total.Mul(decimal.NewFromInt(int64(100 - pct))).Shift(-2).Round(moneyPlaces)
}

// ApplyDiscount определяет процент комбо-скидки и итоговую сумму.
// Для пустого списка возвращает (0, 0).
func ApplyDiscount(items []PricedItem) (int, decimal.Decimal) {
	pricing := PriceItems(items)
	return pricing.DiscountPercent, pricing.Final
}

// PriceItems считает сумму, скидку и итог по позициям.
func PriceItems(items []PricedItem) Pricing {
	if len(items) == 0 {
		return Pricing{Total: decimal.Zero, Final: decimal.Zero}
	}

	var hasSandwich, hasFries, hasSoftDrink bool
	for _, item := range items {
		switch ResolveCategory(item.Product) {
		case CategorySandwich:
			hasSandwich = true
		case CategoryFries:
			hasFries = true
		case CategorySoftDrink:
			hasSoftDrink = true
		}
	}

	total := OrderTotal(items)
	pct := DiscountPercent(hasSandwich, hasFries, hasSoftDrink)

	return Pricing{
		Total:           total,
		DiscountPercent: pct,
		Final:           DiscountedAmount(total, pct),
	}
}

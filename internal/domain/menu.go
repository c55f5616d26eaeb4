package domain

import "github.com/shopspring/decimal"

// Идентификаторы базового меню фиксированы, чтобы seed был идемпотентным.
const (
	ProductIDXBacon    = "6f1c2a52-8a0e-4c3b-9a55-1f6a4d2e7b01"
	ProductIDXBurger   = "0b9d7e3f-2c41-4d8a-b6f2-5e3c9a1d4b02"
	ProductIDXEgg      = "a4e8c1d7-9f2b-4e6a-8c3d-7b5f2e9a1c03"
	ProductIDFries     = "3d7a9b2e-5c8f-4a1d-9e6b-2f4c8a7d3e04"
	ProductIDSoftDrink = "c2f5e8a1-7d3b-4f9c-a2e6-8b1d5c9f7a05"
)

// DefaultMenu возвращает стартовый набор продуктов.
func DefaultMenu() []Product {
	return []Product{
		{ID: ProductIDXBacon, Name: "X Bacon", Price: decimal.RequireFromString("7.00"), Type: ProductTypeSandwich},
		{ID: ProductIDXBurger, Name: "X Burger", Price: decimal.RequireFromString("5.00"), Type: ProductTypeSandwich},
		{ID: ProductIDXEgg, Name: "X Egg", Price: decimal.RequireFromString("4.50"), Type: ProductTypeSandwich},
		{ID: ProductIDFries, Name: "Fries", Price: decimal.RequireFromString("2.00"), Type: ProductTypeExtra},
		{ID: ProductIDSoftDrink, Name: "Soft Drink", Price: decimal.RequireFromString("2.50"), Type: ProductTypeExtra},
	}
}

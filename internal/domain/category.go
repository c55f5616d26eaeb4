package domain

import "strings"

// Category — производная от продукта категория, значимая для скидок.
// В хранилище не сохраняется как входные данные, всегда вычисляется из Product.
type Category string

const (
	CategorySandwich  Category = "Sandwich"
	CategoryFries     Category = "Fries"
	CategorySoftDrink Category = "SoftDrink"
	CategoryOther     Category = "Other"
)

const (
	friesMarker     = "fries"
	softDrinkMarker = "soft drink"
)

// ResolveCategory определяет категорию продукта. Правила проверяются по порядку,
// срабатывает первое: тип Sandwich, затем имя с "fries", затем имя с "soft drink".
func ResolveCategory(p Product) Category {
	if p.Type == ProductTypeSandwich {
		return CategorySandwich
	}

	name := strings.ToLower(p.Name)
	switch {
	case strings.Contains(name, friesMarker):
		return CategoryFries
	case strings.Contains(name, softDrinkMarker):
		return CategorySoftDrink
	default:
		return CategoryOther
	}
}

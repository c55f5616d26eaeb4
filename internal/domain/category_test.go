package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

func TestResolveCategory(t *testing.T) {
	tests := []struct {
		name    string
		product domain.Product
		want    domain.Category
	}{
		{name: "sandwich by type", product: domain.Product{Name: "X Bacon", Type: domain.ProductTypeSandwich}, want: domain.CategorySandwich},
		{name: "sandwich wins over fries name", product: domain.Product{Name: "Fries Burger", Type: domain.ProductTypeSandwich}, want: domain.CategorySandwich},
		{name: "fries exact", product: domain.Product{Name: "Fries", Type: domain.ProductTypeExtra}, want: domain.CategoryFries},
		{name: "fries case insensitive", product: domain.Product{Name: "Large FRIES", Type: domain.ProductTypeExtra}, want: domain.CategoryFries},
		{name: "soft drink", product: domain.Product{Name: "Soft Drink", Type: domain.ProductTypeExtra}, want: domain.CategorySoftDrink},
		{name: "soft drink substring", product: domain.Product{Name: "cold soft drink 500ml", Type: domain.ProductTypeExtra}, want: domain.CategorySoftDrink},
		{name: "fries checked before soft drink", product: domain.Product{Name: "Fries and Soft Drink", Type: domain.ProductTypeExtra}, want: domain.CategoryFries},
		{name: "other extra", product: domain.Product{Name: "Onion Rings", Type: domain.ProductTypeExtra}, want: domain.CategoryOther},
		{name: "unknown type", product: domain.Product{Name: "Ketchup"}, want: domain.CategoryOther},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := domain.ResolveCategory(tc.product)
			if got != tc.want {
				t.Fatalf("ResolveCategory(%q) = %s, want %s", tc.product.Name, got, tc.want)
			}
			if again := domain.ResolveCategory(tc.product); again != got {
				t.Fatalf("ResolveCategory is not stable: %s then %s", got, again)
			}
		})
	}
}

func TestResolveCategory_DefaultMenu(t *testing.T) {
	want := map[string]domain.Category{
		domain.ProductIDXBacon:    domain.CategorySandwich,
		domain.ProductIDXBurger:   domain.CategorySandwich,
		domain.ProductIDXEgg:      domain.CategorySandwich,
		domain.ProductIDFries:     domain.CategoryFries,
		domain.ProductIDSoftDrink: domain.CategorySoftDrink,
	}

	for _, p := range domain.DefaultMenu() {
		if got := domain.ResolveCategory(p); got != want[p.ID] {
			t.Fatalf("product %s resolved to %s, want %s", p.Name, got, want[p.ID])
		}
		if errs := p.Validate(); len(errs) != 0 {
			t.Fatalf("menu product %s is invalid: %v", p.Name, errs)
		}
	}
}

func TestProductValidate(t *testing.T) {
	valid := domain.Product{ID: "p-1", Name: "X Egg", Price: decimal.RequireFromString("4.50"), Type: domain.ProductTypeSandwich}
	if errs := valid.Validate(); len(errs) != 0 {
		t.Fatalf("expected valid product, got %v", errs)
	}

	cases := []struct {
		name string
		mut  func(p *domain.Product)
	}{
		{name: "empty name", mut: func(p *domain.Product) { p.Name = "  " }},
		{name: "negative price", mut: func(p *domain.Product) { p.Price = decimal.RequireFromString("-1") }},
		{name: "too precise price", mut: func(p *domain.Product) { p.Price = decimal.RequireFromString("1.005") }},
		{name: "bad type", mut: func(p *domain.Product) { p.Type = "Dessert" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mut(&p)
			if errs := p.Validate(); len(errs) == 0 {
				t.Fatal("expected validation errors")
			}
		})
	}
}

func TestParseProductType(t *testing.T) {
	got, err := domain.ParseProductType(" sandwich ")
	if err != nil || got != domain.ProductTypeSandwich {
		t.Fatalf("ParseProductType(sandwich) = %q, %v", got, err)
	}
	got, err = domain.ParseProductType("EXTRA")
	if err != nil || got != domain.ProductTypeExtra {
		t.Fatalf("ParseProductType(EXTRA) = %q, %v", got, err)
	}
	if _, err := domain.ParseProductType("drink"); err == nil {
		t.Fatal("expected error for unknown type")
	}
}

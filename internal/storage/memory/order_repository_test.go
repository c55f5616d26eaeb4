package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
)

func newItem(id, orderID, productID, price string) domain.OrderItem {
	return domain.OrderItem{
		ID:        id,
		OrderID:   orderID,
		ProductID: productID,
		Name:      productID,
		UnitPrice: decimal.RequireFromString(price),
		Quantity:  1,
		CreatedAt: time.Now().UTC(),
	}
}

func newOrder() domain.Order {
	now := time.Now().UTC()
	return domain.Order{
		ID: "order-1",
		Items: []domain.OrderItem{
			newItem("item-a", "order-1", "product-a", "7.00"),
			newItem("item-b", "order-1", "product-b", "2.00"),
		},
		TotalAmount:     decimal.RequireFromString("9.00"),
		DiscountPercent: 10,
		FinalAmount:     decimal.RequireFromString("8.10"),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func TestOrderRepository_CreateGet(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()
	order := newOrder()

	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := repo.Create(ctx, order); !errors.Is(err, domain.ErrOrderAlreadyExists) {
		t.Fatalf("expected ErrOrderAlreadyExists, got %v", err)
	}

	stored, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.ID != order.ID || len(stored.Items) != 2 {
		t.Fatalf("unexpected stored order: %+v", stored)
	}

	// Мутация возвращённой копии не должна влиять на хранилище.
	stored.Items[0].Name = "mutated"
	again, _ := repo.Get(ctx, order.ID)
	if again.Items[0].Name == "mutated" {
		t.Fatal("repository leaked internal state")
	}

	if _, err := repo.Get(ctx, "missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()

	older := newOrder()
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := newOrder()
	newer.ID = "order-2"

	for _, o := range []domain.Order{older, newer} {
		if err := repo.Create(ctx, o); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 || orders[0].ID != "order-2" {
		t.Fatalf("unexpected order list: %+v", orders)
	}
}

func TestOrderRepository_UpdateReplacesItems(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()
	order := newOrder()
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var changes domain.ItemChanges
	for _, item := range order.Items {
		changes.Retire(item)
	}
	changes.Attach(newItem("item-c", order.ID, "product-c", "2.50"))

	order.TotalAmount = decimal.RequireFromString("2.50")
	order.DiscountPercent = 0
	order.FinalAmount = decimal.RequireFromString("2.50")

	if err := repo.Update(ctx, order, changes); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Items) != 1 || stored.Items[0].ID != "item-c" {
		t.Fatalf("expected only item-c, got %+v", stored.Items)
	}
	if stored.FinalAmount.StringFixed(2) != "2.50" || stored.DiscountPercent != 0 {
		t.Fatalf("totals were not updated: %+v", stored)
	}
}

func TestOrderRepository_UpdateUnknownRetiredItemKeepsState(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()
	order := newOrder()
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var changes domain.ItemChanges
	changes.Retire(order.Items[0])
	changes.Retire(domain.OrderItem{ID: "ghost"})
	changes.Attach(newItem("item-c", order.ID, "product-c", "2.50"))

	if err := repo.Update(ctx, order, changes); !errors.Is(err, domain.ErrOrderItemNotFound) {
		t.Fatalf("expected ErrOrderItemNotFound, got %v", err)
	}

	stored, _ := repo.Get(ctx, order.ID)
	if len(stored.Items) != 2 {
		t.Fatalf("state must stay untouched, got %+v", stored.Items)
	}
}

func TestOrderRepository_UpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()

	if err := repo.Update(ctx, newOrder(), domain.ItemChanges{}); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on update, got %v", err)
	}
	if err := repo.Delete(ctx, "missing"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on delete, got %v", err)
	}
}

func TestOrderRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewOrderRepository()
	order := newOrder()
	if err := repo.Create(ctx, order); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := repo.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.Get(ctx, order.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected order to be gone, got %v", err)
	}
}

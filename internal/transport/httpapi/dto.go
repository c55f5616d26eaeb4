package httpapi

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// OrderItemRequest — позиция в теле запроса на создание или обновление заказа.
// Количество фиксировано: одна штука на позицию.
type OrderItemRequest struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Quantity  *int   `json:"quantity,omitempty" validate:"omitempty,eq=1"`
}

// OrderRequest — тело POST/PUT /api/orders.
type OrderRequest struct {
	Items []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r OrderRequest) toDomain() []domain.ItemRequest {
	items := make([]domain.ItemRequest, 0, len(r.Items))
	for _, item := range r.Items {
		qty := 1
		if item.Quantity != nil {
			qty = *item.Quantity
		}
		items = append(items, domain.ItemRequest{ProductID: item.ProductID, Quantity: qty})
	}
	return items
}

// ProductResponse — продукт меню.
type ProductResponse struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Price json.Number `json:"price"`
	Type  string      `json:"type"`
}

// OrderItemResponse — позиция заказа; Type содержит категорию.
type OrderItemResponse struct {
	ProductID string      `json:"productId"`
	Name      string      `json:"name"`
	Quantity  int         `json:"quantity"`
	Price     json.Number `json:"price"`
	Type      string      `json:"type"`
}

// OrderResponse — заказ с результатом расчёта.
type OrderResponse struct {
	ID                 string              `json:"id"`
	Items              []OrderItemResponse `json:"items"`
	TotalAmount        json.Number         `json:"totalAmount"`
	DiscountPercentage int                 `json:"discountPercentage"`
	FinalAmount        json.Number         `json:"finalAmount"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// TimelineEventResponse — событие жизненного цикла заказа.
type TimelineEventResponse struct {
	Type     string    `json:"type"`
	Reason   string    `json:"reason,omitempty"`
	Occurred time.Time `json:"occurred"`
}

// money отдаёт сумму JSON-числом с двумя знаками после запятой.
func money(v decimal.Decimal) json.Number {
	return json.Number(v.StringFixed(2))
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:    p.ID,
		Name:  p.Name,
		Price: money(p.Price),
		Type:  string(p.Type),
	}
}

func toProductResponses(products []domain.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toOrderResponse(o domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     money(item.UnitPrice),
			Type:      string(item.Category),
		})
	}
	return OrderResponse{
		ID:                 o.ID,
		Items:              items,
		TotalAmount:        money(o.TotalAmount),
		DiscountPercentage: o.DiscountPercent,
		FinalAmount:        money(o.FinalAmount),
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

func toOrderResponses(orders []domain.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResponse(o))
	}
	return out
}

func toTimelineResponses(events []domain.TimelineEvent) []TimelineEventResponse {
	out := make([]TimelineEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, TimelineEventResponse{Type: e.Type, Reason: e.Reason, Occurred: e.Occurred})
	}
	return out
}

package kafka

import (
	"time"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// EventType определяет тип события
type EventType string

const (
	EventTypeOrderCreated EventType = domain.EventTypeOrderCreated
	EventTypeOrderUpdated EventType = domain.EventTypeOrderUpdated
	EventTypeOrderDeleted EventType = domain.EventTypeOrderDeleted
)

// Topics для Kafka
const (
	TopicOrderEvents     = "burger.order.events"
	TopicDeadLetterQueue = "burger.order.events.dlq" // Dead Letter Queue для failed messages
)

// Kafka headers для DLQ
const (
	HeaderOriginalTopic = "x-original-topic"
	HeaderEventType     = "x-event-type"
	HeaderFailedAt      = "x-failed-at"
)

// OrderEventItem — позиция заказа в событии.
type OrderEventItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderEvent представляет событие заказа. Суммы передаются строками с двумя знаками,
// чтобы потребители не теряли точность.
type OrderEvent struct {
	EventType       EventType        `json:"event_type"`
	OrderID         string           `json:"order_id"`
	TotalAmount     string           `json:"total_amount,omitempty"`
	DiscountPercent int              `json:"discount_percent"`
	FinalAmount     string           `json:"final_amount,omitempty"`
	Items           []OrderEventItem `json:"items,omitempty"`
	Timestamp       time.Time        `json:"timestamp"`
}

// NewOrderEvent создает событие по состоянию заказа.
// Для удалённого заказа суммы и позиции не заполняются.
func NewOrderEvent(eventType EventType, order domain.Order) *OrderEvent {
	ts := order.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	event := &OrderEvent{
		EventType: eventType,
		OrderID:   order.ID,
		Timestamp: ts,
	}
	if eventType == EventTypeOrderDeleted {
		return event
	}

	event.TotalAmount = order.TotalAmount.StringFixed(2)
	event.DiscountPercent = order.DiscountPercent
	event.FinalAmount = order.FinalAmount.StringFixed(2)
	event.Items = make([]OrderEventItem, 0, len(order.Items))
	for _, item := range order.Items {
		event.Items = append(event.Items, OrderEventItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Category:  string(item.Category),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.StringFixed(2),
		})
	}
	return event
}

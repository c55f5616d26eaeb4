package domain

import "time"

// Типы событий жизненного цикла заказа.
const (
	TimelineOrderCreated = "order_created"
	TimelineOrderUpdated = "order_updated"
	TimelineOrderDeleted = "order_deleted"
)

// TimelineEvent описывает событие в жизненном цикле заказа.
type TimelineEvent struct {
	OrderID  string
	Type     string
	Reason   string
	Occurred time.Time
}

package domain

import (
	"context"
	"time"
)

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(ctx context.Context, event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// TimelineRepository хранит события жизненного цикла заказа.
type TimelineRepository interface {
	Append(ctx context.Context, event TimelineEvent) error
	List(ctx context.Context, orderID string) ([]TimelineEvent, error)
}

// IdempotencyRepository хранит состояние обработки запросов по idempotency-key.
type IdempotencyRepository interface {
	CreateProcessing(ctx context.Context, key, requestHash string, ttlAt time.Time) (IdempotencyRecord, error)
	Get(ctx context.Context, key string) (IdempotencyRecord, error)
	MarkDone(ctx context.Context, key string, responseBody []byte, httpStatus int) error
	MarkFailed(ctx context.Context, key string, responseBody []byte, httpStatus int) error
	DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error)
}

// Outbox-события заказа.
const (
	OutboxAggregateOrder  = "order"
	EventTypeOrderCreated = "order.created"
	EventTypeOrderUpdated = "order.updated"
	EventTypeOrderDeleted = "order.deleted"
)

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}

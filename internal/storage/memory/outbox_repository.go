package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
	outboxStatusFailed  = "failed"
)

// outboxRecord хранит сообщение и служебные поля для in-memory реализации.
type outboxRecord struct {
	msg        domain.OutboxMessage
	status     string
	attemptCnt int
	updatedAt  time.Time
}

// OutboxRepository — in-memory хранилище для transactional outbox.
// Сообщения выдаются в порядке постановки в очередь.
type OutboxRepository struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*outboxRecord
}

// NewOutboxRepository создаёт in-memory реализацию outbox.
func NewOutboxRepository() *OutboxRepository {
	return &OutboxRepository{records: make(map[string]*outboxRecord)}
}

// Enqueue сохраняет событие со статусом `pending` и возвращает его с заполненным идентификатором.
func (r *OutboxRepository) Enqueue(_ context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now
	}
	if _, exists := r.records[msg.ID]; !exists {
		r.order = append(r.order, msg.ID)
	}
	r.records[msg.ID] = &outboxRecord{
		msg:       msg,
		status:    outboxStatusPending,
		updatedAt: now,
	}
	return msg, nil
}

// PullPending возвращает до limit сообщений со статусом `pending`.
func (r *OutboxRepository) PullPending(_ context.Context, limit int) ([]domain.OutboxMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}

	result := make([]domain.OutboxMessage, 0, limit)
	for _, id := range r.order {
		rec := r.records[id]
		if rec.status != outboxStatusPending {
			continue
		}
		result = append(result, rec.msg)
		if len(result) >= limit {
			break
		}
	}

	return result, nil
}

// Stats возвращает размер backlog и время самого старого pending-сообщения.
func (r *OutboxRepository) Stats(_ context.Context) (domain.OutboxStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var stats domain.OutboxStats
	for _, id := range r.order {
		rec := r.records[id]
		if rec.status != outboxStatusPending {
			continue
		}
		if stats.PendingCount == 0 || rec.msg.CreatedAt.Before(stats.OldestPendingAt) {
			stats.OldestPendingAt = rec.msg.CreatedAt
		}
		stats.PendingCount++
	}
	return stats, nil
}

// MarkSent обновляет статус события после успешной публикации.
func (r *OutboxRepository) MarkSent(_ context.Context, id string) error {
	return r.mark(id, outboxStatusSent)
}

// MarkFailed фиксирует ошибку публикации.
func (r *OutboxRepository) MarkFailed(_ context.Context, id string) error {
	return r.mark(id, outboxStatusFailed)
}

func (r *OutboxRepository) mark(id, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	record, ok := r.records[id]
	if !ok {
		return domain.ErrOutboxPublish
	}
	record.status = status
	record.attemptCnt++
	record.updatedAt = time.Now().UTC()
	return nil
}

// AllPending возвращает копию всех сообщений со статусом `pending` (используется в тестах).
func (r *OutboxRepository) AllPending() []domain.OutboxMessage {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.OutboxMessage, 0, len(r.order))
	for _, id := range r.order {
		if rec := r.records[id]; rec.status == outboxStatusPending {
			result = append(result, rec.msg)
		}
	}
	return result
}

var _ domain.OutboxRepository = (*OutboxRepository)(nil)

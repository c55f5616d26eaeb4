package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

const (
	outboxStatusPending = "pending"
	outboxStatusSent    = "sent"
	outboxStatusFailed  = "failed"

	defaultOutboxPullLimit = 100
)

type outboxRepository struct {
	db  DBTX
	now func() time.Time
}

// NewOutboxRepository создаёт PostgreSQL-реализацию OutboxRepository.
func NewOutboxRepository(db DBTX) domain.OutboxRepository {
	return &outboxRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func (r *outboxRepository) Enqueue(ctx context.Context, msg domain.OutboxMessage) (domain.OutboxMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	now := r.now()
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = now
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO outbox (
			id, aggregate_type, aggregate_id, event_type, payload,
			status, attempt_count, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,0,$7,$8)
	`,
		msg.ID, msg.AggregateType, msg.AggregateID, msg.EventType, msg.Payload,
		outboxStatusPending, msg.CreatedAt, now,
	)
	if err != nil {
		return domain.OutboxMessage{}, fmt.Errorf("enqueue outbox message: %w", err)
	}

	return msg, nil
}

func (r *outboxRepository) PullPending(ctx context.Context, limit int) ([]domain.OutboxMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if limit <= 0 {
		limit = defaultOutboxPullLimit
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, aggregate_type, aggregate_id, event_type, payload, created_at
		FROM outbox
		WHERE status = $1
		ORDER BY created_at, id
		LIMIT $2
	`, outboxStatusPending, limit)
	if err != nil {
		return nil, fmt.Errorf("pull pending outbox messages: %w", err)
	}
	defer rows.Close()

	result := make([]domain.OutboxMessage, 0, limit)
	for rows.Next() {
		var msg domain.OutboxMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.AggregateType,
			&msg.AggregateID,
			&msg.EventType,
			&msg.Payload,
			&msg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox message: %w", err)
		}
		msg.CreatedAt = msg.CreatedAt.UTC()
		result = append(result, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}

	return result, nil
}

func (r *outboxRepository) Stats(ctx context.Context) (domain.OutboxStats, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		stats  domain.OutboxStats
		oldest *time.Time
	)

	if err := r.db.QueryRow(ctx, `
		SELECT COUNT(*), MIN(created_at)
		FROM outbox
		WHERE status = $1
	`, outboxStatusPending).Scan(&stats.PendingCount, &oldest); err != nil {
		return domain.OutboxStats{}, fmt.Errorf("outbox stats query failed: %w", err)
	}

	if oldest != nil {
		stats.OldestPendingAt = oldest.UTC()
	}

	return stats, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	return r.markStatus(ctx, id, outboxStatusSent)
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id string) error {
	return r.markStatus(ctx, id, outboxStatusFailed)
}

func (r *outboxRepository) markStatus(ctx context.Context, id, status string) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE outbox
		SET status = $2,
		    attempt_count = attempt_count + 1,
		    updated_at = $3
		WHERE id = $1
	`, id, status, r.now())
	if err != nil {
		return fmt.Errorf("mark outbox message as %s: %w", status, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOutboxPublish
	}

	return nil
}

var _ domain.OutboxRepository = (*outboxRepository)(nil)

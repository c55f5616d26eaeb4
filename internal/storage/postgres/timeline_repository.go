package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

type timelineRepository struct {
	db DBTX
}

// NewTimelineRepository создаёт PostgreSQL-реализацию TimelineRepository.
func NewTimelineRepository(db DBTX) domain.TimelineRepository {
	return &timelineRepository{db: db}
}

func (r *timelineRepository) Append(ctx context.Context, event domain.TimelineEvent) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if event.Occurred.IsZero() {
		event.Occurred = time.Now().UTC()
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO order_timeline (order_id, type, reason, occurred)
		VALUES ($1,$2,$3,$4)
	`, event.OrderID, event.Type, event.Reason, event.Occurred); err != nil {
		return fmt.Errorf("append timeline event: %w", err)
	}

	return nil
}

func (r *timelineRepository) List(ctx context.Context, orderID string) ([]domain.TimelineEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT order_id, type, reason, occurred
		FROM order_timeline
		WHERE order_id = $1
		ORDER BY occurred ASC, id ASC
	`, orderID)
	if err != nil {
		if isInvalidUUID(err) {
			return []domain.TimelineEvent{}, nil
		}
		return nil, fmt.Errorf("list timeline events: %w", err)
	}
	defer rows.Close()

	events := make([]domain.TimelineEvent, 0)
	for rows.Next() {
		var event domain.TimelineEvent
		if err := rows.Scan(&event.OrderID, &event.Type, &event.Reason, &event.Occurred); err != nil {
			return nil, fmt.Errorf("scan timeline event: %w", err)
		}
		event.Occurred = event.Occurred.UTC()
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate timeline events: %w", err)
	}

	return events, nil
}

var _ domain.TimelineRepository = (*timelineRepository)(nil)

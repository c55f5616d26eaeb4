package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

func newTestOutboxRepo(t *testing.T) (*outboxRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock := newMockPool(t)
	repo := NewOutboxRepository(mock).(*outboxRepository)
	repo.now = fixedClock
	return repo, mock
}

func TestOutboxRepository_EnqueueAssignsIDAndTimestamp(t *testing.T) {
	repo, mock := newTestOutboxRepo(t)

	mock.ExpectExec("INSERT INTO outbox").
		WithArgs(
			pgxmock.AnyArg(), domain.OutboxAggregateOrder, sampleOrderID, domain.EventTypeOrderCreated,
			[]byte(`{}`), outboxStatusPending, fixedNow, fixedNow,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	msg, err := repo.Enqueue(context.Background(), domain.OutboxMessage{
		AggregateType: domain.OutboxAggregateOrder,
		AggregateID:   sampleOrderID,
		EventType:     domain.EventTypeOrderCreated,
		Payload:       []byte(`{}`),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, fixedNow, msg.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_EnqueueError(t *testing.T) {
	repo, mock := newTestOutboxRepo(t)

	mock.ExpectExec("INSERT INTO outbox").WillReturnError(errors.New("disk full"))

	_, err := repo.Enqueue(context.Background(), domain.OutboxMessage{ID: "msg-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enqueue outbox message")
}

func TestOutboxRepository_PullPending(t *testing.T) {
	repo, mock := newTestOutboxRepo(t)

	mock.ExpectQuery("SELECT .+ FROM outbox WHERE status").
		WithArgs(outboxStatusPending, defaultOutboxPullLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "aggregate_type", "aggregate_id", "event_type", "payload", "created_at"}).
			AddRow("msg-1", domain.OutboxAggregateOrder, sampleOrderID, domain.EventTypeOrderCreated, []byte(`{"a":1}`), fixedNow).
			AddRow("msg-2", domain.OutboxAggregateOrder, sampleOrderID, domain.EventTypeOrderDeleted, []byte(`{"a":2}`), fixedNow.Add(time.Second)))

	msgs, err := repo.PullPending(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, "msg-1", msgs[0].ID)
	assert.Equal(t, domain.EventTypeOrderDeleted, msgs[1].EventType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_Stats(t *testing.T) {
	repo, mock := newTestOutboxRepo(t)
	oldest := fixedNow.Add(-time.Minute)

	mock.ExpectQuery("SELECT COUNT.+ FROM outbox").
		WithArgs(outboxStatusPending).
		WillReturnRows(pgxmock.NewRows([]string{"count", "min"}).AddRow(3, &oldest))

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.PendingCount)
	assert.Equal(t, oldest, stats.OldestPendingAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_MarkSentAndFailed(t *testing.T) {
	repo, mock := newTestOutboxRepo(t)

	mock.ExpectExec("UPDATE outbox").
		WithArgs("msg-1", outboxStatusSent, fixedNow).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE outbox").
		WithArgs("msg-2", outboxStatusFailed, fixedNow).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE outbox").
		WithArgs("missing", outboxStatusSent, fixedNow).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.MarkSent(context.Background(), "msg-1"))
	require.NoError(t, repo.MarkFailed(context.Background(), "msg-2"))
	assert.ErrorIs(t, repo.MarkSent(context.Background(), "missing"), domain.ErrOutboxPublish)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

func newTestIdempotencyRepo(t *testing.T) (*idempotencyRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock := newMockPool(t)
	repo := NewIdempotencyRepository(mock).(*idempotencyRepository)
	repo.now = fixedClock
	return repo, mock
}

func idempotencyRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"key", "request_hash", "response_body", "http_status", "status", "ttl_at", "created_at", "updated_at",
	})
}

func TestIdempotencyRepository_CreateProcessing(t *testing.T) {
	repo, mock := newTestIdempotencyRepo(t)
	ttl := fixedNow.Add(defaultIdempotencyTTL)

	mock.ExpectExec("INSERT INTO idempotency_keys").
		WithArgs("key-1", "hash-1", string(domain.IdempotencyStatusProcessing), ttl, fixedNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	record, err := repo.CreateProcessing(context.Background(), " key-1 ", "hash-1", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "key-1", record.Key)
	assert.Equal(t, domain.IdempotencyStatusProcessing, record.Status)
	assert.Equal(t, ttl, record.TTLAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepository_CreateProcessingValidation(t *testing.T) {
	repo, _ := newTestIdempotencyRepo(t)

	_, err := repo.CreateProcessing(context.Background(), "  ", "hash", time.Time{})
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyRequired)

	_, err = repo.CreateProcessing(context.Background(), "key", " ", time.Time{})
	assert.ErrorIs(t, err, domain.ErrIdempotencyRequestHashRequired)
}

func TestIdempotencyRepository_CreateProcessingLiveKey(t *testing.T) {
	tests := []struct {
		name    string
		hash    string
		wantErr error
	}{
		{name: "same request", hash: "hash-1", wantErr: domain.ErrIdempotencyKeyAlreadyExists},
		{name: "different request", hash: "hash-2", wantErr: domain.ErrIdempotencyHashMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestIdempotencyRepo(t)
			ttl := fixedNow.Add(time.Hour)
			status := 201

			mock.ExpectExec("INSERT INTO idempotency_keys").
				WithArgs("key-1", tt.hash, string(domain.IdempotencyStatusProcessing), ttl, fixedNow).
				WillReturnResult(pgxmock.NewResult("INSERT", 0))
			mock.ExpectQuery("SELECT .+ FROM idempotency_keys WHERE key").
				WithArgs("key-1", fixedNow).
				WillReturnRows(idempotencyRows().AddRow(
					"key-1", "hash-1", []byte(`{"data":{}}`), &status, "done", ttl, fixedNow, fixedNow,
				))

			existing, err := repo.CreateProcessing(context.Background(), "key-1", tt.hash, ttl)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, domain.IdempotencyStatusDone, existing.Status)
			assert.Equal(t, 201, existing.HTTPStatus)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIdempotencyRepository_GetNotFound(t *testing.T) {
	repo, mock := newTestIdempotencyRepo(t)

	mock.ExpectQuery("SELECT .+ FROM idempotency_keys WHERE key").
		WithArgs("missing", fixedNow).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrIdempotencyKeyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepository_GetRejectsUnknownStatus(t *testing.T) {
	repo, mock := newTestIdempotencyRepo(t)
	status := 200

	mock.ExpectQuery("SELECT .+ FROM idempotency_keys WHERE key").
		WithArgs("key-1", fixedNow).
		WillReturnRows(idempotencyRows().AddRow(
			"key-1", "hash-1", []byte(nil), &status, "archived", fixedNow, fixedNow, fixedNow,
		))

	_, err := repo.Get(context.Background(), "key-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid idempotency status")
}

func TestIdempotencyRepository_MarkDoneAndFailed(t *testing.T) {
	repo, mock := newTestIdempotencyRepo(t)

	mock.ExpectExec("UPDATE idempotency_keys").
		WithArgs([]byte(`ok`), 201, string(domain.IdempotencyStatusDone), fixedNow, "key-1").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE idempotency_keys").
		WithArgs([]byte(`bad`), 400, string(domain.IdempotencyStatusFailed), fixedNow, "key-2").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("UPDATE idempotency_keys").
		WithArgs([]byte(nil), 500, string(domain.IdempotencyStatusFailed), fixedNow, "missing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	require.NoError(t, repo.MarkDone(context.Background(), "key-1", []byte(`ok`), 201))
	require.NoError(t, repo.MarkFailed(context.Background(), "key-2", []byte(`bad`), 400))
	assert.ErrorIs(t, repo.MarkFailed(context.Background(), "missing", nil, 500), domain.ErrIdempotencyKeyNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdempotencyRepository_DeleteExpired(t *testing.T) {
	repo, mock := newTestIdempotencyRepo(t)

	mock.ExpectExec("DELETE FROM idempotency_keys WHERE key IN").
		WithArgs(fixedNow, 50).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))
	mock.ExpectExec("DELETE FROM idempotency_keys WHERE ttl_at").
		WithArgs(fixedNow).
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	removed, err := repo.DeleteExpired(context.Background(), time.Time{}, 50)
	require.NoError(t, err)
	assert.Equal(t, 7, removed)

	removed, err = repo.DeleteExpired(context.Background(), fixedNow, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

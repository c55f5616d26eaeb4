package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

const defaultIdempotencyTTL = 24 * time.Hour

type idempotencyRepository struct {
	db  DBTX
	now func() time.Time
}

// NewIdempotencyRepository создаёт PostgreSQL-реализацию IdempotencyRepository.
func NewIdempotencyRepository(db DBTX) domain.IdempotencyRepository {
	return &idempotencyRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateProcessing регистрирует ключ. Просроченную запись с тем же ключом
// перезаписывает, живую не трогает.
func (r *idempotencyRepository) CreateProcessing(ctx context.Context, key, requestHash string, ttlAt time.Time) (domain.IdempotencyRecord, error) {
	key = strings.TrimSpace(key)
	requestHash = strings.TrimSpace(requestHash)

	if key == "" {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyRequired
	}
	if requestHash == "" {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyRequestHashRequired
	}

	now := r.now()
	if ttlAt.IsZero() {
		ttlAt = now.Add(defaultIdempotencyTTL)
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		INSERT INTO idempotency_keys (
			key, request_hash, response_body, http_status, status, ttl_at, created_at, updated_at
		) VALUES ($1,$2,NULL,NULL,$3,$4,$5,$5)
		ON CONFLICT (key) DO UPDATE
		SET request_hash = EXCLUDED.request_hash,
		    response_body = NULL,
		    http_status = NULL,
		    status = EXCLUDED.status,
		    ttl_at = EXCLUDED.ttl_at,
		    created_at = EXCLUDED.created_at,
		    updated_at = EXCLUDED.updated_at
		WHERE idempotency_keys.ttl_at <= $5
	`,
		key,
		requestHash,
		string(domain.IdempotencyStatusProcessing),
		ttlAt,
		now,
	)
	if err != nil {
		return domain.IdempotencyRecord{}, fmt.Errorf("create idempotency record: %w", err)
	}

	if tag.RowsAffected() == 0 {
		existing, getErr := r.Get(ctx, key)
		if getErr != nil {
			return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyAlreadyExists
		}
		if existing.RequestHash != requestHash {
			return existing, domain.ErrIdempotencyHashMismatch
		}
		return existing, domain.ErrIdempotencyKeyAlreadyExists
	}

	return domain.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		Status:      domain.IdempotencyStatusProcessing,
		TTLAt:       ttlAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (r *idempotencyRepository) Get(ctx context.Context, key string) (domain.IdempotencyRecord, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyRequired
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		record       domain.IdempotencyRecord
		statusRaw    string
		responseBody []byte
		httpStatus   *int
	)

	// Просроченные ключи считаются отсутствующими ещё до прохода cleanup-воркера.
	err := r.db.QueryRow(ctx, `
		SELECT key, request_hash, response_body, http_status, status, ttl_at, created_at, updated_at
		FROM idempotency_keys
		WHERE key = $1 AND ttl_at > $2
	`, key, r.now()).Scan(
		&record.Key,
		&record.RequestHash,
		&responseBody,
		&httpStatus,
		&statusRaw,
		&record.TTLAt,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.IdempotencyRecord{}, domain.ErrIdempotencyKeyNotFound
		}
		return domain.IdempotencyRecord{}, fmt.Errorf("get idempotency record: %w", err)
	}

	record.Status = domain.IdempotencyStatus(statusRaw)
	if !record.Status.Valid() {
		return domain.IdempotencyRecord{}, fmt.Errorf("invalid idempotency status %q for key %s", statusRaw, key)
	}

	record.ResponseBody = append([]byte(nil), responseBody...)
	if httpStatus != nil {
		record.HTTPStatus = *httpStatus
	}

	return record, nil
}

func (r *idempotencyRepository) MarkDone(ctx context.Context, key string, responseBody []byte, httpStatus int) error {
	return r.markStatus(ctx, key, domain.IdempotencyStatusDone, responseBody, httpStatus)
}

func (r *idempotencyRepository) MarkFailed(ctx context.Context, key string, responseBody []byte, httpStatus int) error {
	return r.markStatus(ctx, key, domain.IdempotencyStatusFailed, responseBody, httpStatus)
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, before time.Time, limit int) (int, error) {
	if before.IsZero() {
		before = r.now()
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var (
		tag pgconn.CommandTag
		err error
	)

	if limit > 0 {
		tag, err = r.db.Exec(ctx, `
			DELETE FROM idempotency_keys
			WHERE key IN (
				SELECT key
				FROM idempotency_keys
				WHERE ttl_at <= $1
				ORDER BY ttl_at ASC
				LIMIT $2
			)
		`, before, limit)
	} else {
		tag, err = r.db.Exec(ctx, `
			DELETE FROM idempotency_keys
			WHERE ttl_at <= $1
		`, before)
	}
	if err != nil {
		return 0, fmt.Errorf("delete expired idempotency records: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

func (r *idempotencyRepository) markStatus(ctx context.Context, key string, status domain.IdempotencyStatus, responseBody []byte, httpStatus int) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return domain.ErrIdempotencyKeyRequired
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE idempotency_keys
		SET response_body = $1,
		    http_status = $2,
		    status = $3,
		    updated_at = $4
		WHERE key = $5
	`,
		responseBody,
		httpStatus,
		string(status),
		r.now(),
		key,
	)
	if err != nil {
		return fmt.Errorf("mark idempotency key status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrIdempotencyKeyNotFound
	}

	return nil
}

var _ domain.IdempotencyRepository = (*idempotencyRepository)(nil)

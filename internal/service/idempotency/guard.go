package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

const defaultKeyTTL = 24 * time.Hour

var (
	// ErrRequestInProgress — запрос с тем же ключом ещё обрабатывается.
	ErrRequestInProgress = errors.New("request with the same idempotency key is already processing")
	// ErrEmptyCache — ключ завершён, но ответ не сохранён.
	ErrEmptyCache = errors.New("idempotency cache is empty")
)

// Response — сохранённый ответ на запрос.
type Response struct {
	Status int
	Body   []byte
}

// Succeeded сообщает, что ответ успешный (2xx).
func (r Response) Succeeded() bool {
	return r.Status >= 200 && r.Status < 300
}

// Guard связывает обработку запроса с ключом идемпотентности.
type Guard struct {
	repo   domain.IdempotencyRepository
	ttl    time.Duration
	logger *log.Entry
	now    func() time.Time
}

// NewGuard создаёт Guard. ttl <= 0 означает срок по умолчанию (24h).
func NewGuard(repo domain.IdempotencyRepository, ttl time.Duration, logger *log.Entry) *Guard {
	if ttl <= 0 {
		ttl = defaultKeyTTL
	}
	if logger == nil {
		logger = log.WithField("component", "idempotency")
	}
	return &Guard{
		repo:   repo,
		ttl:    ttl,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Begin регистрирует ключ. Если ключ уже обработан, возвращает сохранённый ответ для повтора.
// Возвращает domain.ErrIdempotencyHashMismatch, если ключ использован для другого запроса,
// и ErrRequestInProgress, если первый запрос ещё выполняется.
func (g *Guard) Begin(ctx context.Context, key, requestHash string) (*Response, error) {
	record, err := g.repo.CreateProcessing(ctx, key, requestHash, g.now().Add(g.ttl))
	if err == nil {
		return nil, nil
	}

	switch {
	case errors.Is(err, domain.ErrIdempotencyHashMismatch):
		return nil, err
	case errors.Is(err, domain.ErrIdempotencyKeyAlreadyExists):
		switch record.Status {
		case domain.IdempotencyStatusProcessing:
			return nil, ErrRequestInProgress
		case domain.IdempotencyStatusDone, domain.IdempotencyStatusFailed:
			if record.HTTPStatus == 0 {
				return nil, ErrEmptyCache
			}
			return &Response{Status: record.HTTPStatus, Body: append([]byte(nil), record.ResponseBody...)}, nil
		default:
			return nil, fmt.Errorf("unknown idempotency record status %q", record.Status)
		}
	default:
		return nil, fmt.Errorf("create idempotency record: %w", err)
	}
}

// Complete сохраняет ответ: 2xx помечает ключ выполненным, остальное — неудачным.
// Ошибки хранилища только логируются, ответ клиенту уже сформирован.
func (g *Guard) Complete(ctx context.Context, key string, resp Response) {
	var err error
	if resp.Succeeded() {
		err = g.repo.MarkDone(ctx, key, resp.Body, resp.Status)
	} else {
		err = g.repo.MarkFailed(ctx, key, resp.Body, resp.Status)
	}
	if err != nil {
		g.logger.WithError(err).WithFields(log.Fields{
			"idempotency_key": key,
			"status":          resp.Status,
		}).Warn("failed to store idempotent response")
	}
}

// RequestHash строит отпечаток запроса из метода, пути и тела.
func RequestHash(method, path string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(strings.ToUpper(method)))
	h.Write([]byte{':'})
	h.Write([]byte(path))
	h.Write([]byte{':'})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

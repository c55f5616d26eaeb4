package httpapi

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/service/idempotency"
)

// Заголовки идемпотентности.
const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplay         = "Idempotent-Replay"

	maxIdempotencyKeyLen = 255
)

// requestLogger пишет одну строку лога на запрос.
func requestLogger(logger *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			entry := logger.WithFields(log.Fields{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      status,
				"bytes":       ww.BytesWritten(),
				"duration_ms": time.Since(started).Milliseconds(),
				"request_id":  middleware.GetReqID(r.Context()),
			})
			switch {
			case status >= http.StatusInternalServerError:
				entry.Error("http request")
			case status >= http.StatusBadRequest:
				entry.Warn("http request")
			default:
				entry.Info("http request")
			}
		})
	}
}

// captureWriter дублирует тело ответа в буфер.
type captureWriter struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (c *captureWriter) WriteHeader(status int) {
	if c.status == 0 {
		c.status = status
	}
	c.ResponseWriter.WriteHeader(status)
}

func (c *captureWriter) Write(p []byte) (int, error) {
	if c.status == 0 {
		c.status = http.StatusOK
	}
	c.body.Write(p)
	return c.ResponseWriter.Write(p)
}

// idempotent повторяет сохранённый ответ для запросов с уже обработанным Idempotency-Key.
// Запросы без заголовка проходят как есть.
func idempotent(guard *idempotency.Guard, logger *log.Entry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(HeaderIdempotencyKey))
			if guard == nil || key == "" {
				next.ServeHTTP(w, r)
				return
			}
			if len(key) > maxIdempotencyKeyLen {
				writeErrorCode(w, r, http.StatusBadRequest, CodeInvalidParameter, "idempotency key is too long")
				return
			}

			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err != nil {
				writeErrorCode(w, r, http.StatusBadRequest, CodeInvalidInput, "invalid request body")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(body))

			cached, err := guard.Begin(r.Context(), key, idempotency.RequestHash(r.Method, r.URL.Path, body))
			switch {
			case err == nil && cached != nil:
				logger.WithFields(log.Fields{
					"idempotency_key": key,
					"status":          cached.Status,
				}).Info("replaying idempotent response")
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(HeaderReplay, "true")
				w.WriteHeader(cached.Status)
				_, _ = w.Write(cached.Body)
				return
			case err == nil:
			case errors.Is(err, domain.ErrIdempotencyHashMismatch):
				writeErrorCode(w, r, http.StatusConflict, CodeIdempotencyReused, "idempotency key was used with a different request")
				return
			case errors.Is(err, idempotency.ErrRequestInProgress):
				writeErrorCode(w, r, http.StatusConflict, CodeRequestInProgress, "request with this idempotency key is still processing")
				return
			case errors.Is(err, idempotency.ErrEmptyCache):
				logger.WithField("idempotency_key", key).Warn("idempotency record has no stored response")
				writeErrorCode(w, r, http.StatusConflict, CodeRequestInProgress, "stored response for this idempotency key is unavailable")
				return
			default:
				writeError(w, r, err, logger)
				return
			}

			cw := &captureWriter{ResponseWriter: w}
			next.ServeHTTP(cw, r)

			status := cw.status
			if status == 0 {
				status = http.StatusOK
			}
			guard.Complete(context.WithoutCancel(r.Context()), key, idempotency.Response{
				Status: status,
				Body:   cw.body.Bytes(),
			})
		})
	}
}

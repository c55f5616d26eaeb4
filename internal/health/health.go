package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

const defaultCheckTimeout = 2 * time.Second

// Status представляет статус компонента
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Check — результат проверки одного компонента.
type Check struct {
	Name       string `json:"name"`
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// Response — тело ответа /healthz.
type Response struct {
	Status        Status           `json:"status"`
	Timestamp     time.Time        `json:"timestamp"`
	Checks        map[string]Check `json:"checks,omitempty"`
	Version       string           `json:"version,omitempty"`
	UptimeSeconds int64            `json:"uptime_seconds"`
}

// Checker проверяет один компонент сервиса.
type Checker interface {
	Check(ctx context.Context) Check
}

// Handler обслуживает /healthz и /readyz.
type Handler struct {
	mu        sync.RWMutex
	checkers  map[string]Checker
	version   string
	startTime time.Time
}

// NewHandler создаёт новый health handler
func NewHandler(version string) *Handler {
	return &Handler{
		checkers:  make(map[string]Checker),
		version:   version,
		startTime: time.Now(),
	}
}

// RegisterChecker регистрирует проверку компонента
func (h *Handler) RegisterChecker(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// Run выполняет все проверки и сводит их в общий статус:
// любой unhealthy делает сервис unhealthy, degraded не блокирует готовность.
func (h *Handler) Run(ctx context.Context) Response {
	h.mu.RLock()
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	checkers := make(map[string]Checker, len(h.checkers))
	for k, v := range h.checkers {
		checkers[k] = v
	}
	h.mu.RUnlock()
	sort.Strings(names)

	checks := make(map[string]Check, len(names))
	overall := StatusHealthy
	for _, name := range names {
		check := checkers[name].Check(ctx)
		checks[name] = check

		switch {
		case check.Status == StatusUnhealthy:
			overall = StatusUnhealthy
		case check.Status == StatusDegraded && overall == StatusHealthy:
			overall = StatusDegraded
		}
	}

	return Response{
		Status:        overall,
		Timestamp:     time.Now().UTC(),
		Checks:        checks,
		Version:       h.version,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
	}
}

// ServeHTTP отдаёт подробный отчёт в JSON.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	response := h.Run(r.Context())

	statusCode := http.StatusOK
	if response.Status == StatusUnhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(response)
}

// LivenessHandler простой liveness probe (всегда возвращает 200)
func LivenessHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// ReadinessHandler отвечает 503, пока хотя бы одна проверка unhealthy.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	if h.Run(r.Context()).Status == StatusUnhealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// SimpleChecker вызывает функцию проверки с таймаутом.
type SimpleChecker struct {
	name    string
	timeout time.Duration
	checkFn func(ctx context.Context) error
}

// NewSimpleChecker создаёт проверку; ошибка checkFn означает unhealthy.
func NewSimpleChecker(name string, checkFn func(ctx context.Context) error) *SimpleChecker {
	return &SimpleChecker{
		name:    name,
		timeout: defaultCheckTimeout,
		checkFn: checkFn,
	}
}

// Check выполняет проверку
func (c *SimpleChecker) Check(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	err := c.checkFn(ctx)
	duration := time.Since(start)

	if err != nil {
		return Check{
			Name:       c.name,
			Status:     StatusUnhealthy,
			Message:    err.Error(),
			DurationMs: duration.Milliseconds(),
		}
	}

	return Check{
		Name:       c.name,
		Status:     StatusHealthy,
		DurationMs: duration.Milliseconds(),
	}
}

// OutboxChecker следит за backlog outbox. При превышении порога статус degraded.
type OutboxChecker struct {
	repo       domain.OutboxRepository
	maxPending int
}

// NewOutboxChecker создаёт проверку backlog с порогом maxPending.
func NewOutboxChecker(repo domain.OutboxRepository, maxPending int) *OutboxChecker {
	return &OutboxChecker{repo: repo, maxPending: maxPending}
}

// Check сравнивает число pending-сообщений с порогом.
func (c *OutboxChecker) Check(ctx context.Context) Check {
	ctx, cancel := context.WithTimeout(ctx, defaultCheckTimeout)
	defer cancel()

	start := time.Now()
	stats, err := c.repo.Stats(ctx)
	duration := time.Since(start).Milliseconds()
	if err != nil {
		return Check{Name: "outbox", Status: StatusUnhealthy, Message: err.Error(), DurationMs: duration}
	}
	if c.maxPending > 0 && stats.PendingCount > c.maxPending {
		return Check{
			Name:       "outbox",
			Status:     StatusDegraded,
			Message:    fmt.Sprintf("%d pending events exceed limit %d", stats.PendingCount, c.maxPending),
			DurationMs: duration,
		}
	}
	return Check{Name: "outbox", Status: StatusHealthy, DurationMs: duration}
}

package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/service/idempotency"
)

const defaultRequestTimeout = 15 * time.Second

// Config — зависимости роутера, не относящиеся к бизнес-логике.
type Config struct {
	Logger         *log.Entry
	Guard          *idempotency.Guard
	RequestTimeout time.Duration
}

// NewRouter собирает HTTP API: меню и заказы.
func NewRouter(orders OrderService, catalog CatalogService, cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.WithField("component", "http")
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}

	products := &productHandler{catalog: catalog, logger: logger}
	ordersHandler := &orderHandler{orders: orders, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.list)
			r.Get("/sandwiches", products.sandwiches)
			r.Get("/extras", products.extras)
			r.Get("/{id}", products.get)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.list)
			r.Get("/{id}", ordersHandler.get)
			r.Get("/{id}/timeline", ordersHandler.timeline)
			r.Delete("/{id}", ordersHandler.delete)

			r.Group(func(r chi.Router) {
				r.Use(idempotent(cfg.Guard, logger))
				r.Post("/", ordersHandler.create)
				r.Put("/{id}", ordersHandler.update)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorCode(w, r, http.StatusNotFound, "NOT_FOUND", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorCode(w, r, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed")
	})

	return r
}

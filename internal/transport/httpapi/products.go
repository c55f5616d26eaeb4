package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// CatalogService — чтение меню.
type CatalogService interface {
	List(ctx context.Context) ([]domain.Product, error)
	Sandwiches(ctx context.Context) ([]domain.Product, error)
	Extras(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
}

type productHandler struct {
	catalog CatalogService
	logger  *log.Entry
}

func (h *productHandler) list(w http.ResponseWriter, r *http.Request) {
	h.writeProducts(w, r, "products", h.catalog.List)
}

func (h *productHandler) sandwiches(w http.ResponseWriter, r *http.Request) {
	h.writeProducts(w, r, "sandwiches", h.catalog.Sandwiches)
}

func (h *productHandler) extras(w http.ResponseWriter, r *http.Request) {
	h.writeProducts(w, r, "extras", h.catalog.Extras)
}

// writeProducts отдаёт 204, если список пуст.
func (h *productHandler) writeProducts(w http.ResponseWriter, r *http.Request, kind string, load func(context.Context) ([]domain.Product, error)) {
	products, err := load(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	if len(products) == 0 {
		h.logger.WithField("kind", kind).Warn("no products found")
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeData(w, http.StatusOK, toProductResponses(products))
}

func (h *productHandler) get(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			writeErrorCode(w, r, http.StatusNotFound, CodeProductNotFound, "product not found")
			return
		}
		writeError(w, r, err, h.logger)
		return
	}

	writeData(w, http.StatusOK, toProductResponse(product))
}

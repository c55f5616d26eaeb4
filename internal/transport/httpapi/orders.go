package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// OrderService — операции над заказами, доступные транспорту.
type OrderService interface {
	CreateOrder(ctx context.Context, requests []domain.ItemRequest) (domain.Order, error)
	UpdateOrder(ctx context.Context, orderID string, requests []domain.ItemRequest) (domain.Order, error)
	DeleteOrder(ctx context.Context, orderID string) error
	HasDuplicateCategory(ctx context.Context, requests []domain.ItemRequest) (bool, error)
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	ListOrders(ctx context.Context) ([]domain.Order, error)
	Timeline(ctx context.Context, orderID string) ([]domain.TimelineEvent, error)
}

type orderHandler struct {
	orders OrderService
	logger *log.Entry
}

func (h *orderHandler) list(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, toOrderResponses(orders))
}

func (h *orderHandler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	order, err := h.orders.GetOrder(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, toOrderResponse(order))
}

func (h *orderHandler) create(w http.ResponseWriter, r *http.Request) {
	items, ok := h.readItems(w, r)
	if !ok {
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), items)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", "/api/orders/"+order.ID)
	writeData(w, http.StatusCreated, toOrderResponse(order))
}

func (h *orderHandler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r)
	if !ok {
		return
	}
	items, ok := h.readItems(w, r)
	if !ok {
		return
	}

	order, err := h.orders.UpdateOrder(r.Context(), id, items)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, toOrderResponse(order))
}

func (h *orderHandler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *orderHandler) timeline(w http.ResponseWriter, r *http.Request) {
	id, ok := orderIDParam(w, r)
	if !ok {
		return
	}

	events, err := h.orders.Timeline(r.Context(), id)
	if err != nil {
		writeError(w, r, err, h.logger)
		return
	}
	writeData(w, http.StatusOK, toTimelineResponses(events))
}

// readItems разбирает тело запроса и отклоняет наборы с повторяющейся категорией.
func (h *orderHandler) readItems(w http.ResponseWriter, r *http.Request) ([]domain.ItemRequest, bool) {
	var req OrderRequest
	if err := decodeAndValidate(w, r, &req); err != nil {
		writeError(w, r, err, h.logger)
		return nil, false
	}
	items := req.toDomain()

	duplicate, err := h.orders.HasDuplicateCategory(r.Context(), items)
	if err != nil {
		writeError(w, r, err, h.logger)
		return nil, false
	}
	if duplicate {
		h.logger.WithFields(log.Fields{
			"path":  r.URL.Path,
			"items": len(items),
		}).Warn("order rejected: duplicate category")
		writeErrorCode(w, r, http.StatusBadRequest, CodeDuplicateCategory, DuplicateCategoryMessage)
		return nil, false
	}

	return items, true
}

func orderIDParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		writeErrorCode(w, r, http.StatusBadRequest, CodeInvalidParameter, "invalid order id: "+raw)
		return "", false
	}
	return id.String(), true
}

package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/service/idempotency"
)

// Коды ошибок в теле ответа.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInvalidParameter  = "INVALID_PARAMETER"
	CodeDuplicateCategory = "DUPLICATE_CATEGORY"
	CodeOrderNotFound     = "ORDER_NOT_FOUND"
	CodeProductNotFound   = "PRODUCT_NOT_FOUND"
	CodeIdempotencyReused = "IDEMPOTENCY_KEY_REUSED"
	CodeRequestInProgress = "REQUEST_IN_PROGRESS"
	CodeInternal          = "INTERNAL"
)

// DuplicateCategoryMessage возвращается, если в заказе повторяется категория.
const DuplicateCategoryMessage = "The order cannot contain more than one sandwich, fries, or soda."

var errInvalidBody = errors.New("invalid request body")

// Response — общий JSON-конверт ответа.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse описывает ошибку в конверте ответа.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"requestId,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Response{Data: data})
}

func writeErrorCode(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	writeJSON(w, status, Response{Error: &ErrorResponse{
		Code:      code,
		Message:   message,
		RequestID: middleware.GetReqID(r.Context()),
	}})
}

// writeError переводит доменные ошибки в HTTP-статусы. Неизвестные ошибки логируются как 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, logger *log.Entry) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, Response{Error: &ErrorResponse{
			Code:      CodeValidation,
			Message:   "request validation failed",
			Fields:    verr.Fields(),
			RequestID: middleware.GetReqID(r.Context()),
		}})
	case errors.Is(err, errInvalidBody), errors.Is(err, domain.ErrItemsRequired):
		writeErrorCode(w, r, http.StatusBadRequest, CodeInvalidInput, err.Error())
	case errors.Is(err, domain.ErrOrderNotFound):
		writeErrorCode(w, r, http.StatusNotFound, CodeOrderNotFound, "order not found")
	case errors.Is(err, domain.ErrProductNotFound):
		writeErrorCode(w, r, http.StatusUnprocessableEntity, CodeProductNotFound, err.Error())
	case errors.Is(err, domain.ErrIdempotencyHashMismatch):
		writeErrorCode(w, r, http.StatusConflict, CodeIdempotencyReused, "idempotency key was used for a different request")
	case errors.Is(err, idempotency.ErrRequestInProgress):
		writeErrorCode(w, r, http.StatusConflict, CodeRequestInProgress, "request with this idempotency key is still processing")
	default:
		logger.WithError(err).WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"request_id": middleware.GetReqID(r.Context()),
		}).Error("request failed")
		writeErrorCode(w, r, http.StatusInternalServerError, CodeInternal, "an internal error occurred")
	}
}

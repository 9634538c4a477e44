package set_service_active

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/catalog"
)

const (
	msgInvalidServiceID   = "invalid service ID"
	msgInvalidRequestBody = "invalid request body"
	msgForbidden          = "access denied"
	msgNotFound           = "service not found"
)

// SetActiveRequest тело запроса на включение/выключение услуги
type SetActiveRequest struct {
	IsActive bool `json:"isActive"`
}

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/services/{serviceId}/active
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/services/{id}/active - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req SetActiveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/services/{id}/active - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := auth.FromContext(r.Context())

	if err := h.service.SetActive(r.Context(), serviceID, req.IsActive, actor); err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/services/{id}/active - Access denied: service_id=%d", serviceID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PATCH /admin/services/{id}/active - Not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/services/{id}/active - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/services/{id}/active - Set: service_id=%d, active=%t", serviceID, req.IsActive)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

package delete_service

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
	msgInvalidServiceID = "invalid service ID"
	msgForbidden        = "access denied"
	msgNotFound         = "service not found"
	msgServiceInUse     = "service has bookings and cannot be deleted, deactivate it instead"
)

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

// Handle DELETE /api/v1/admin/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	actor := auth.FromContext(r.Context())

	if err := h.service.Delete(r.Context(), serviceID, actor); err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("DELETE /admin/services/{id} - Access denied: service_id=%d", serviceID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("DELETE /admin/services/{id} - Not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrServiceInUse):
			h.logger.Warn("DELETE /admin/services/{id} - In use: service_id=%d", serviceID)
			handlers.RespondConflict(w, msgServiceInUse)

		default:
			h.logger.Error("DELETE /admin/services/{id} - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/services/{id} - Deleted: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

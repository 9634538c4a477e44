package update_service

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/catalog"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/catalog/models"
)

const (
	msgInvalidServiceID   = "invalid service ID"
	msgInvalidRequestBody = "invalid request body"
	msgForbidden          = "access denied"
	msgNotFound           = "service not found"
	msgSlugTaken          = "a service with this slug already exists"
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

// Handle PUT /api/v1/admin/services/{serviceId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	var req models.ServiceData
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := auth.FromContext(r.Context())

	updated, err := h.service.Update(r.Context(), serviceID, &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("PUT /admin/services/{id} - Access denied: service_id=%d", serviceID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("PUT /admin/services/{id} - Not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, catalog.ErrValidation):
			h.logger.Warn("PUT /admin/services/{id} - Validation failed: service_id=%d, %v", serviceID, err)
			handlers.RespondUnprocessableEntity(w, validationMessage(err))

		case errors.Is(err, catalog.ErrSlugTaken):
			h.logger.Warn("PUT /admin/services/{id} - Slug taken: %s", req.Slug)
			handlers.RespondConflict(w, msgSlugTaken)

		default:
			h.logger.Error("PUT /admin/services/{id} - Failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /admin/services/{id} - Updated: service_id=%d", serviceID)
	handlers.RespondJSON(w, http.StatusOK, updated)
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), catalog.ErrValidation.Error()+": ")
}

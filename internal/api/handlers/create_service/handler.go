package create_service

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/catalog"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/catalog/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgForbidden          = "access denied"
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

// Handle POST /api/v1/admin/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.ServiceData
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := auth.FromContext(r.Context())

	created, err := h.service.Create(r.Context(), &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrAccessDenied):
			h.logger.Warn("POST /admin/services - Access denied")
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, catalog.ErrValidation):
			h.logger.Warn("POST /admin/services - Validation failed: %v", err)
			handlers.RespondUnprocessableEntity(w, validationMessage(err))

		case errors.Is(err, catalog.ErrSlugTaken):
			h.logger.Warn("POST /admin/services - Slug taken: %s", req.Slug)
			handlers.RespondConflict(w, msgSlugTaken)

		default:
			h.logger.Error("POST /admin/services - Failed: slug=%s, error=%v", req.Slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/services - Created: service_id=%d, slug=%s", created.ID, created.Slug)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), catalog.ErrValidation.Error()+": ")
}

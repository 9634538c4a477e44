package list_services

import (
	"net/http"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
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

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := auth.FromContext(r.Context())

	result, err := h.service.List(r.Context(), actor)
	if err != nil {
		h.logger.Error("GET /services - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - %d services", len(result.Services))
	handlers.RespondJSON(w, http.StatusOK, result)
}

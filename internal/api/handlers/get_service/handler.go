package get_service

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/catalog"
)

const msgNotFound = "service not found"

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

// Handle GET /api/v1/services/{slug}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	result, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, catalog.ErrServiceNotFound):
			h.logger.Warn("GET /services/{slug} - Not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /services/{slug} - Failed: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{slug} - Fetched: slug=%s", slug)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package list_reviews

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/reviews"
)

const msgServiceNotFound = "service not found"

type Handler struct {
	service ReviewService
	logger  Logger
}

func NewHandler(service ReviewService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{slug}/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	slug := vars["slug"]

	result, err := h.service.ListApprovedBySlug(r.Context(), slug)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrServiceNotFound):
			h.logger.Warn("GET /services/{slug}/reviews - Service not found: slug=%s", slug)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /services/{slug}/reviews - Failed: slug=%s, error=%v", slug, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /services/{slug}/reviews - %d reviews for %s", len(result.Reviews), slug)
	handlers.RespondJSON(w, http.StatusOK, result)
}

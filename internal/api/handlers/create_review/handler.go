package create_review

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/reviews"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/reviews/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgServiceNotFound    = "service not found"
)

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

// Handle POST /api/v1/reviews
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reviews - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	created, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrValidation):
			h.logger.Warn("POST /reviews - Validation failed: %v", err)
			handlers.RespondUnprocessableEntity(w, validationMessage(err))

		case errors.Is(err, reviews.ErrServiceNotFound):
			h.logger.Warn("POST /reviews - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("POST /reviews - Failed: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reviews - Created: review_id=%d, service_id=%d", created.ID, created.ServiceID)
	handlers.RespondJSON(w, http.StatusCreated, created)
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), reviews.ErrValidation.Error()+": ")
}

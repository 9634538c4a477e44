package moderate_review

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/reviews"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/reviews/models"
)

const (
	msgInvalidReviewID    = "invalid review ID"
	msgInvalidRequestBody = "invalid request body"
	msgForbidden          = "access denied"
	msgNotFound           = "review not found"
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

// Handle PATCH /api/v1/reviews/{reviewId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reviewID, err := strconv.ParseInt(vars["reviewId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reviews/{id} - Invalid review ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReviewID)
		return
	}

	var req models.ModerateReviewRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reviews/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := auth.FromContext(r.Context())

	review, err := h.service.Moderate(r.Context(), reviewID, &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, reviews.ErrAccessDenied):
			h.logger.Warn("PATCH /reviews/{id} - Access denied: review_id=%d", reviewID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reviews.ErrReviewNotFound):
			h.logger.Warn("PATCH /reviews/{id} - Not found: review_id=%d", reviewID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /reviews/{id} - Failed: review_id=%d, error=%v", reviewID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reviews/{id} - Moderated: review_id=%d, approved=%t", reviewID, review.IsApproved)
	handlers.RespondJSON(w, http.StatusOK, review)
}

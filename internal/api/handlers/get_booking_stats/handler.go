package get_booking_stats

import (
	"errors"
	"net/http"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/bookings"
)

const msgForbidden = "access denied"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor := auth.FromContext(r.Context())

	stats, err := h.service.Stats(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /bookings/stats - Access denied")
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/stats - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/stats - Stats computed: total=%d", stats.Total)
	handlers.RespondJSON(w, http.StatusOK, stats)
}

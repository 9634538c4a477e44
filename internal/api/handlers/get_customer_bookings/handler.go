package get_customer_bookings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/bookings"
)

const (
	msgInvalidEmail = "invalid customer email"
	msgForbidden    = "access denied"
)

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

// Handle GET /api/v1/customers/{email}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	email := vars["email"]

	actor := auth.FromContext(r.Context())

	result, err := h.service.GetCustomerBookings(r.Context(), email, actor)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /customers/{email}/bookings - Invalid email: %q", email)
			handlers.RespondBadRequest(w, msgInvalidEmail)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /customers/{email}/bookings - Access denied for %s", email)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /customers/{email}/bookings - Failed: email=%s, error=%v", email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{email}/bookings - %d bookings for %s", len(result.Bookings), email)
	handlers.RespondJSON(w, http.StatusOK, result)
}

package create_booking

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	createBooking "github.com/Holding-1-at-a-time/booking-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgRateLimited        = "too many booking requests, please try again later"
	msgServiceNotFound    = "service not found"
	msgServiceInactive    = "this service is not currently offered"
	msgSlotTaken          = "this time slot is already booked, please pick another"
	msgInvalidDate        = "bookings cannot be made for past dates"
	msgDateTooFar         = "this date is too far in the future"
	msgInvalidTimeSlot    = "this time is outside our booking hours"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrValidation):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondUnprocessableEntity(w, validationMessage(err))

		case errors.Is(err, createBooking.ErrRateLimited):
			h.logger.Warn("POST /bookings - Rate limited: email=%s", req.CustomerEmail)
			handlers.RespondTooManyRequests(w, msgRateLimited)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceInactive):
			h.logger.Warn("POST /bookings - Service inactive: service_id=%d", req.ServiceID)
			handlers.RespondUnprocessableEntity(w, msgServiceInactive)

		case errors.Is(err, createBooking.ErrSlotTaken):
			h.logger.Warn("POST /bookings - Slot taken: date=%s, time=%s", req.PreferredDate, req.PreferredTime)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Date in the past: date=%s", req.PreferredDate)
			handlers.RespondUnprocessableEntity(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrDateTooFarInFuture):
			h.logger.Warn("POST /bookings - Date too far in future: date=%s", req.PreferredDate)
			handlers.RespondUnprocessableEntity(w, msgDateTooFar)

		case errors.Is(err, createBooking.ErrInvalidTimeSlot):
			h.logger.Warn("POST /bookings - Time outside grid: time=%s", req.PreferredTime)
			handlers.RespondUnprocessableEntity(w, msgInvalidTimeSlot)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: email=%s, error=%v",
				req.CustomerEmail, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, email=%s",
		result.ID, result.CustomerEmail)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

// validationMessage снимает префикс sentinel ошибки, оставляя список полей
func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), createBooking.ErrValidation.Error()+": ")
}

package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	getAvailableSlots "github.com/Holding-1-at-a-time/booking-service/internal/usecase/get_available_slots"
)

const (
	msgMissingDate      = "date query parameter is required"
	msgInvalidDate      = "date must be in YYYY-MM-DD format"
	msgInvalidServiceID = "serviceId must be a positive integer"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-slots?date=YYYY-MM-DD&serviceId=N
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	req := &getAvailableSlots.Request{Date: date}

	if raw := r.URL.Query().Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || serviceID <= 0 {
			h.logger.Warn("GET /available-slots - Invalid serviceId: %q", raw)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		req.ServiceID = &serviceID
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /available-slots - Service not found")
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /available-slots - Failed: date=%s, error=%v", date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

package update_settings

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/settings"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgForbidden          = "access denied"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor := auth.FromContext(r.Context())

	updated, err := h.service.Update(r.Context(), &req, actor)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PUT /settings - Access denied")
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, settings.ErrValidation):
			h.logger.Warn("PUT /settings - Validation failed: %v", err)
			handlers.RespondUnprocessableEntity(w, validationMessage(err))

		default:
			h.logger.Error("PUT /settings - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /settings - Updated: openHour=%d, closeHour=%d", updated.OpenHour, updated.CloseHour)
	handlers.RespondJSON(w, http.StatusOK, updated)
}

func validationMessage(err error) string {
	return strings.TrimPrefix(err.Error(), settings.ErrValidation.Error()+": ")
}

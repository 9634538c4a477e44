package models

import (
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
)

// UpdateSettingsRequest запрос на обновление настроек бронирования
type UpdateSettingsRequest struct {
	OpenHour           int     `json:"openHour"`
	CloseHour          int     `json:"closeHour"`
	AdvanceBookingDays int     `json:"advanceBookingDays"`
	ValetFee           float64 `json:"valetFee"`
}

// SettingsResponse ответ с настройками бронирования
type SettingsResponse struct {
	OpenHour           int       `json:"openHour"`
	CloseHour          int       `json:"closeHour"`
	AdvanceBookingDays int       `json:"advanceBookingDays"`
	ValetFee           float64   `json:"valetFee"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// FromDomainSettings конвертирует domain модель в DTO
func FromDomainSettings(s *domain.BookingSettings) *SettingsResponse {
	return &SettingsResponse{
		OpenHour:           s.OpenHour,
		CloseHour:          s.CloseHour,
		AdvanceBookingDays: s.AdvanceBookingDays,
		ValetFee:           s.ValetFee,
		UpdatedAt:          s.UpdatedAt,
	}
}

package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	"github.com/Holding-1-at-a-time/booking-service/pkg/validate"
)

// validateRequest валидирует входные данные запроса, накапливая ошибки
func validateRequest(req *Request) error {
	var result validate.Result

	result.Check(strings.TrimSpace(req.CustomerName) != "", "name is required")
	result.Check(validate.Email(req.CustomerEmail), "a valid email address is required")
	result.Check(validate.Phone(req.CustomerPhone), "a valid phone number is required")
	result.Check(req.ServiceID > 0, "a service must be selected")
	result.Check(validate.Date(req.Date), "preferred date must be in YYYY-MM-DD format")
	result.Check(validate.Time(req.Time), "preferred time must look like 2:00 PM")
	result.Check(domain.IsValidVehicleType(req.VehicleType), "unknown vehicle type")

	if !result.IsValid() {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(result.Errors, "; "))
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом и внутри окна бронирования
func validateDate(bookingDate time.Time, now time.Time, advanceBookingDays int) error {
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, now.Location())

	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}

	// advanceBookingDays = 0 означает отсутствие ограничения
	if advanceBookingDays == 0 {
		return nil
	}

	maxDate := nowOnly.AddDate(0, 0, advanceBookingDays)
	if dateOnly.After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, advanceBookingDays)
	}

	return nil
}

package update_booking_status

import (
	"context"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/bookings/models"
)

type BookingService interface {
	UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest, actor auth.Context) (*models.BookingResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

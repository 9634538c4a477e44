package get_available_slots

import (
	"context"
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByDate(ctx context.Context, date time.Time, excludeStatuses []domain.BookingStatus) ([]*domain.Booking, error)
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.BookingSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

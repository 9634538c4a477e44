package settings

import (
	"context"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек бронирования
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.BookingSettings, error)
	Update(ctx context.Context, settings *domain.BookingSettings) error
}

// ActivityLogRepository интерфейс журнала действий
type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLogEntry) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package bookings

import (
	"context"
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByDate(ctx context.Context, date time.Time, excludeStatuses []domain.BookingStatus) ([]*domain.Booking, error)
	GetByCustomerEmail(ctx context.Context, email string) ([]*domain.Booking, error)
	ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, notes *string) error
}

// ActivityLogRepository интерфейс журнала действий
type ActivityLogRepository interface {
	Insert(ctx context.Context, entry *domain.ActivityLogEntry) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

package catalog

import (
	"context"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Service, error)
	List(ctx context.Context, onlyActive bool) ([]*domain.Service, error)
	Update(ctx context.Context, svc *domain.Service) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	CountByService(ctx context.Context, serviceID int64) (int64, error)
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

package reviews

import (
	"context"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
)

// ReviewRepository интерфейс репозитория отзывов
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) (*domain.Review, error)
	GetByID(ctx context.Context, id int64) (*domain.Review, error)
	ListApprovedByService(ctx context.Context, serviceID int64) ([]*domain.Review, error)
	SetModeration(ctx context.Context, id int64, approved, featured bool) error
}

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Service, error)
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

package delete_service

import (
	"context"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
)

type CatalogService interface {
	Delete(ctx context.Context, id int64, actor auth.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package create_service

import (
	"context"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/catalog/models"
)

type CatalogService interface {
	Create(ctx context.Context, data *models.ServiceData, actor auth.Context) (*models.ServiceResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

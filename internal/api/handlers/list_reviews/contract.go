package list_reviews

import (
	"context"

	"github.com/Holding-1-at-a-time/booking-service/internal/service/reviews/models"
)

type ReviewService interface {
	ListApprovedBySlug(ctx context.Context, slug string) (*models.ReviewListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

package moderate_review

import (
	"context"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/reviews/models"
)

type ReviewService interface {
	Moderate(ctx context.Context, id int64, req *models.ModerateReviewRequest, actor auth.Context) (*models.ReviewResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

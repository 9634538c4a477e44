package reviews

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	reviewRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/review"
	serviceRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/service"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/reviews/models"
	"github.com/Holding-1-at-a-time/booking-service/pkg/ptr"
	"github.com/Holding-1-at-a-time/booking-service/pkg/validate"
)

// Service сервис отзывов
type Service struct {
	reviewRepo   ReviewRepository
	serviceRepo  ServiceRepository
	activityRepo ActivityLogRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса отзывов
func NewService(
	reviewRepo ReviewRepository,
	serviceRepo ServiceRepository,
	activityRepo ActivityLogRepository,
	logger Logger,
) *Service {
	return &Service{
		reviewRepo:   reviewRepo,
		serviceRepo:  serviceRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Create создает отзыв. Отзыв публикуется только после модерации.
func (s *Service) Create(ctx context.Context, req *models.CreateReviewRequest) (*models.ReviewResponse, error) {
	s.logger.Info("Create: new review for service id=%d, rating=%d", req.ServiceID, req.Rating)

	req.CustomerName = validate.Sanitize(req.CustomerName)
	req.CustomerEmail = validate.Sanitize(req.CustomerEmail)
	req.Comment = validate.Sanitize(req.Comment)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.serviceRepo.GetByID(ctx, req.ServiceID); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Create: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("Create: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: Create - failed to get service: %v", ErrInternal, err)
	}

	review := &domain.Review{
		ServiceID:     req.ServiceID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Rating:        req.Rating,
		Comment:       req.Comment,
	}

	created, err := s.reviewRepo.Create(ctx, review)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created review id=%d", created.ID)
	return models.FromDomainReview(created), nil
}

// ListApprovedBySlug возвращает одобренные отзывы услуги по ее slug
func (s *Service) ListApprovedBySlug(ctx context.Context, slug string) (*models.ReviewListResponse, error) {
	s.logger.Info("ListApprovedBySlug: fetching reviews for service slug=%s", slug)

	service, err := s.serviceRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("ListApprovedBySlug: service slug=%s not found", slug)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("ListApprovedBySlug: failed to get service slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: ListApprovedBySlug - failed to get service: %v", ErrInternal, err)
	}

	reviews, err := s.reviewRepo.ListApprovedByService(ctx, service.ID)
	if err != nil {
		s.logger.Error("ListApprovedBySlug: repository error for service id=%d: %v", service.ID, err)
		return nil, fmt.Errorf("%w: ListApprovedBySlug - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReviewList(reviews), nil
}

// Moderate одобряет, отклоняет или выделяет отзыв. Доступно только админу.
func (s *Service) Moderate(ctx context.Context, id int64, req *models.ModerateReviewRequest, actor auth.Context) (*models.ReviewResponse, error) {
	s.logger.Info("Moderate: review id=%d approved=%t featured=%t", id, req.IsApproved, req.IsFeatured)

	if !actor.IsAdmin() {
		s.logger.Warn("Moderate: access denied for review id=%d", id)
		return nil, ErrAccessDenied
	}

	if err := s.reviewRepo.SetModeration(ctx, id, req.IsApproved, req.IsFeatured); err != nil {
		if errors.Is(err, reviewRepo.ErrReviewNotFound) {
			s.logger.Warn("Moderate: review id=%d not found", id)
			return nil, ErrReviewNotFound
		}
		s.logger.Error("Moderate: repository error for review id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Moderate - repository error: %v", ErrInternal, err)
	}

	entry := &domain.ActivityLogEntry{
		Action:  domain.ActionReviewModerated,
		ActorID: ptr.Ptr("admin"),
		Metadata: map[string]interface{}{
			"review_id":   id,
			"is_approved": req.IsApproved,
			"is_featured": req.IsFeatured,
		},
	}
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		s.logger.Warn("Moderate: failed to write activity log: %v", err)
	}

	review, err := s.reviewRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Moderate: failed to re-fetch review id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Moderate - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainReview(review), nil
}

// validateCreateRequest валидирует данные нового отзыва, накапливая ошибки
func validateCreateRequest(req *models.CreateReviewRequest) error {
	var result validate.Result

	result.Check(req.ServiceID > 0, "a service must be selected")
	result.Check(req.CustomerName != "", "name is required")
	result.Check(validate.Email(req.CustomerEmail), "a valid email address is required")
	result.Check(req.Rating >= domain.MinReviewRating && req.Rating <= domain.MaxReviewRating,
		"rating must be between 1 and 5")

	if !result.IsValid() {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(result.Errors, "; "))
	}
	return nil
}

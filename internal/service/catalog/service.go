package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	serviceRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/service"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/catalog/models"
	"github.com/Holding-1-at-a-time/booking-service/pkg/ptr"
	"github.com/Holding-1-at-a-time/booking-service/pkg/validate"
)

// Service сервис каталога услуг
type Service struct {
	serviceRepo  ServiceRepository
	bookingRepo  BookingRepository
	activityRepo ActivityLogRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	bookingRepo BookingRepository,
	activityRepo ActivityLogRepository,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:  serviceRepo,
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// List возвращает услуги каталога. Публичный список содержит только
// активные услуги, админ видит все.
func (s *Service) List(ctx context.Context, actor auth.Context) (*models.ServiceListResponse, error) {
	onlyActive := !actor.IsAdmin()
	s.logger.Info("List: fetching services, onlyActive=%t", onlyActive)

	services, err := s.serviceRepo.List(ctx, onlyActive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// GetBySlug возвращает услугу по slug
func (s *Service) GetBySlug(ctx context.Context, slug string) (*models.ServiceResponse, error) {
	s.logger.Info("GetBySlug: fetching service slug=%s", slug)

	service, err := s.serviceRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("GetBySlug: service slug=%s not found", slug)
			return nil, ErrServiceNotFound
		}
		s.logger.Error("GetBySlug: repository error for slug=%s: %v", slug, err)
		return nil, fmt.Errorf("%w: GetBySlug - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainService(service), nil
}

// Create создает услугу. Доступно только админу.
func (s *Service) Create(ctx context.Context, data *models.ServiceData, actor auth.Context) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service slug=%s", data.Slug)

	if !actor.IsAdmin() {
		s.logger.Warn("Create: access denied")
		return nil, ErrAccessDenied
	}

	sanitizeServiceData(data)
	if err := validateServiceData(data); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.serviceRepo.Create(ctx, data.ToDomainService())
	if err != nil {
		if errors.Is(err, serviceRepo.ErrSlugTaken) {
			s.logger.Warn("Create: slug %s already taken", data.Slug)
			return nil, ErrSlugTaken
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created service id=%d", created.ID)

	s.writeActivity(ctx, domain.ActionServiceCreated, created.ID, created.Slug)

	return models.FromDomainService(created), nil
}

// Update обновляет услугу целиком. Доступно только админу.
func (s *Service) Update(ctx context.Context, id int64, data *models.ServiceData, actor auth.Context) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	if !actor.IsAdmin() {
		s.logger.Warn("Update: access denied for service id=%d", id)
		return nil, ErrAccessDenied
	}

	sanitizeServiceData(data)
	if err := validateServiceData(data); err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	service := data.ToDomainService()
	service.ID = id

	if err := s.serviceRepo.Update(ctx, service); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Update: service id=%d not found", id)
			return nil, ErrServiceNotFound
		}
		if errors.Is(err, serviceRepo.ErrSlugTaken) {
			s.logger.Warn("Update: slug %s already taken", data.Slug)
			return nil, ErrSlugTaken
		}
		s.logger.Error("Update: repository error for service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: updated service id=%d", id)

	s.writeActivity(ctx, domain.ActionServiceUpdated, id, service.Slug)

	updated, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to re-fetch service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу. Услуга с бронированиями не удаляется,
// вместо этого ее следует деактивировать.
func (s *Service) Delete(ctx context.Context, id int64, actor auth.Context) error {
	s.logger.Info("Delete: deleting service id=%d", id)

	if !actor.IsAdmin() {
		s.logger.Warn("Delete: access denied for service id=%d", id)
		return ErrAccessDenied
	}

	service, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	count, err := s.bookingRepo.CountByService(ctx, id)
	if err != nil {
		s.logger.Error("Delete: failed to count bookings for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - failed to count bookings: %v", ErrInternal, err)
	}
	if count > 0 {
		s.logger.Warn("Delete: service id=%d has %d bookings", id, count)
		return ErrServiceInUse
	}

	if err := s.serviceRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			return ErrServiceNotFound
		}
		s.logger.Error("Delete: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted service id=%d", id)

	s.writeActivity(ctx, domain.ActionServiceDeleted, id, service.Slug)

	return nil
}

// SetActive включает или выключает услугу. Доступно только админу.
func (s *Service) SetActive(ctx context.Context, id int64, active bool, actor auth.Context) error {
	s.logger.Info("SetActive: service id=%d active=%t", id, active)

	if !actor.IsAdmin() {
		s.logger.Warn("SetActive: access denied for service id=%d", id)
		return ErrAccessDenied
	}

	if err := s.serviceRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			s.logger.Warn("SetActive: service id=%d not found", id)
			return ErrServiceNotFound
		}
		s.logger.Error("SetActive: repository error for service id=%d: %v", id, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	s.writeActivity(ctx, domain.ActionServiceUpdated, id, "")

	return nil
}

// Вспомогательные методы

func sanitizeServiceData(data *models.ServiceData) {
	data.Slug = strings.ToLower(strings.TrimSpace(data.Slug))
	data.Name = validate.Sanitize(data.Name)
	data.Description = validate.Sanitize(data.Description)
	for i, f := range data.Features {
		data.Features[i] = validate.Sanitize(f)
	}
	for i := range data.ProcessSteps {
		data.ProcessSteps[i].Title = validate.Sanitize(data.ProcessSteps[i].Title)
		data.ProcessSteps[i].Description = validate.Sanitize(data.ProcessSteps[i].Description)
	}
}

func validateServiceData(data *models.ServiceData) error {
	var result validate.Result

	result.Check(validate.Slug(data.Slug), "slug must be lowercase letters, digits and hyphens")
	result.Check(data.Name != "", "name is required")
	_, categoryOK := domain.ParseServiceCategory(data.Category)
	result.Check(categoryOK, "category must be primary or additional")
	result.Check(data.Price == "" || validate.Price(data.Price), "price must look like $199, $199.99 or $199+")

	if !result.IsValid() {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(result.Errors, "; "))
	}
	return nil
}

func (s *Service) writeActivity(ctx context.Context, action string, serviceID int64, slug string) {
	metadata := map[string]interface{}{"service_id": serviceID}
	if slug != "" {
		metadata["slug"] = slug
	}
	entry := &domain.ActivityLogEntry{
		Action:   action,
		ActorID:  ptr.Ptr("admin"),
		Metadata: metadata,
	}
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		s.logger.Warn("writeActivity: failed to write %s: %v", action, err)
	}
}

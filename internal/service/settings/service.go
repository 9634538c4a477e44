package settings

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	settingsRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/settings"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/settings/models"
	"github.com/Holding-1-at-a-time/booking-service/pkg/ptr"
	"github.com/Holding-1-at-a-time/booking-service/pkg/validate"
)

// Service сервис настроек бронирования
type Service struct {
	settingsRepo SettingsRepository
	activityRepo ActivityLogRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(
	settingsRepo SettingsRepository,
	activityRepo ActivityLogRepository,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		activityRepo: activityRepo,
		logger:       logger,
	}
}

// Get возвращает текущие настройки бронирования.
// При отсутствии строки в БД отдаются дефолты.
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Get: settings row missing, returning defaults")
			return models.FromDomainSettings(domain.DefaultBookingSettings()), nil
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(settings), nil
}

// Update сохраняет настройки бронирования. Доступно только админу.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest, actor auth.Context) (*models.SettingsResponse, error) {
	s.logger.Info("Update: openHour=%d, closeHour=%d, advanceDays=%d, valetFee=%.2f",
		req.OpenHour, req.CloseHour, req.AdvanceBookingDays, req.ValetFee)

	if !actor.IsAdmin() {
		s.logger.Warn("Update: access denied")
		return nil, ErrAccessDenied
	}

	if err := validateSettings(req); err != nil {
		s.logger.Warn("Update: validation failed: %v", err)
		return nil, err
	}

	settings := &domain.BookingSettings{
		OpenHour:           req.OpenHour,
		CloseHour:          req.CloseHour,
		AdvanceBookingDays: req.AdvanceBookingDays,
		ValetFee:           req.ValetFee,
	}

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		s.logger.Error("Update: repository error: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	entry := &domain.ActivityLogEntry{
		Action:  domain.ActionSettingsUpdated,
		ActorID: ptr.Ptr("admin"),
		Metadata: map[string]interface{}{
			"open_hour":            req.OpenHour,
			"close_hour":           req.CloseHour,
			"advance_booking_days": req.AdvanceBookingDays,
			"valet_fee":            req.ValetFee,
		},
	}
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		s.logger.Warn("Update: failed to write activity log: %v", err)
	}

	updated, err := s.settingsRepo.Get(ctx)
	if err != nil {
		s.logger.Error("Update: failed to re-fetch settings: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved")
	return models.FromDomainSettings(updated), nil
}

// validateSettings валидирует настройки, накапливая ошибки
func validateSettings(req *models.UpdateSettingsRequest) error {
	var result validate.Result

	result.Check(req.OpenHour >= domain.MinBusinessHour && req.OpenHour <= domain.MaxBusinessHour,
		"openHour must be between 0 and 23")
	result.Check(req.CloseHour >= domain.MinBusinessHour && req.CloseHour <= domain.MaxBusinessHour,
		"closeHour must be between 0 and 23")
	result.Check(req.CloseHour >= req.OpenHour, "closeHour must not be before openHour")
	result.Check(req.AdvanceBookingDays >= 0, "advanceBookingDays must not be negative")
	result.Check(req.ValetFee >= 0, "valetFee must not be negative")

	if !result.IsValid() {
		return fmt.Errorf("%w: %s", ErrValidation, strings.Join(result.Errors, "; "))
	}
	return nil
}

package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	bookingRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/booking"
	serviceRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/service"
	settingsRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/settings"
	"github.com/Holding-1-at-a-time/booking-service/pkg/ptr"
	"github.com/Holding-1-at-a-time/booking-service/pkg/types"
	"github.com/Holding-1-at-a-time/booking-service/pkg/validate"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	settingsRepo SettingsRepository
	activityRepo ActivityLogRepository
	rateLimiter  RateLimiter
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	settingsRepo SettingsRepository,
	activityRepo ActivityLogRepository,
	rateLimiter RateLimiter,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		settingsRepo: settingsRepo,
		activityRepo: activityRepo,
		rateLimiter:  rateLimiter,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости слота и вставка идут в одной сериализуемой транзакции,
// частичный уникальный индекс в БД страхует от гонки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: email=%s, service=%d, date=%s, time=%s",
		req.CustomerEmail, req.ServiceID, req.Date, req.Time)

	// 1. Очищаем свободный текст до валидации
	req.CustomerName = validate.Sanitize(req.CustomerName)
	req.CustomerEmail = validate.Sanitize(req.CustomerEmail)
	req.CustomerPhone = validate.Sanitize(req.CustomerPhone)
	if req.Message != nil {
		req.Message = ptr.Ptr(validate.Sanitize(*req.Message))
	}

	// 2. Валидация входных данных (ошибки накапливаются)
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 3. Лимит заявок на клиента
	if !uc.rateLimiter.Allow(ctx, req.CustomerEmail) {
		uc.logger.Warn("CreateBooking: rate limit exceeded for %s", req.CustomerEmail)
		return nil, ErrRateLimited
	}

	// Формат уже проверен валидацией
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse date: %v", ErrInternal, err)
	}
	slot, err := types.ParseClockTime(req.Time)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse time: %v", ErrInternal, err)
	}

	// 4. Услуга должна существовать и быть активной
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is inactive", req.ServiceID)
		return nil, ErrServiceInactive
	}

	now := uc.timeProvider.Now()

	var result *domain.Booking

	// 5. Проверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 5.1. Настройки бронирования; при отсутствии строки берем дефолты
		settings, err := uc.settingsRepo.Get(txCtx)
		if err != nil {
			if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Error("CreateBooking: failed to get settings: %v", err)
				return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
			}
			settings = domain.DefaultBookingSettings()
			uc.logger.Info("CreateBooking: settings row missing, using defaults")
		}

		// 5.2. Дата внутри окна бронирования
		if err := validateDate(date, now, settings.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateBooking: date validation failed: %v", err)
			return err
		}

		// 5.3. Время должно попадать в часовую сетку
		if !settings.ContainsSlot(slot) {
			uc.logger.Warn("CreateBooking: time %s is outside the booking grid", slot)
			return ErrInvalidTimeSlot
		}

		// 5.4. Занятые слоты на дату с блокировкой (FOR UPDATE);
		// отмененные и завершенные слот освобождают
		taken, err := uc.bookingRepo.GetByDate(txCtx, date, domain.SlotFreeingStatuses)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		for _, b := range taken {
			if b.PreferredTime.Equal(slot) {
				uc.logger.Warn("CreateBooking: slot %s %s already booked by id=%d",
					req.Date, slot, b.ID)
				return ErrSlotTaken
			}
		}

		// 5.5. Создаем бронирование со статусом pending
		booking := &domain.Booking{
			CustomerName:  req.CustomerName,
			CustomerEmail: req.CustomerEmail,
			CustomerPhone: req.CustomerPhone,
			ServiceID:     req.ServiceID,
			PreferredDate: date,
			PreferredTime: slot,
			VehicleType:   domain.VehicleType(req.VehicleType),
			Message:       req.Message,
			Status:        domain.StatusPending,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotTaken) {
				return ErrSlotTaken
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 6. Журнал действий; ошибки записи не валят операцию
	entry := &domain.ActivityLogEntry{
		Action:        domain.ActionBookingCreated,
		BookingID:     ptr.Ptr(result.ID),
		CustomerEmail: ptr.Ptr(result.CustomerEmail),
		Metadata: map[string]interface{}{
			"service_id": result.ServiceID,
			"date":       result.PreferredDate.Format(domain.DateFormat),
			"time":       string(result.PreferredTime),
		},
	}
	if err := uc.activityRepo.Insert(ctx, entry); err != nil {
		uc.logger.Warn("CreateBooking: failed to write activity log: %v", err)
	}

	return &Response{
		ID:            result.ID,
		CustomerName:  result.CustomerName,
		CustomerEmail: result.CustomerEmail,
		CustomerPhone: result.CustomerPhone,
		ServiceID:     result.ServiceID,
		ServiceName:   service.Name,
		Date:          result.PreferredDate,
		Time:          result.PreferredTime,
		VehicleType:   string(result.VehicleType),
		Message:       result.Message,
		Status:        string(result.Status),
		CreatedAt:     result.CreatedAt,
		UpdatedAt:     result.UpdatedAt,
	}, nil
}

package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	serviceRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/service"
	settingsRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/settings"
	"github.com/Holding-1-at-a-time/booking-service/pkg/types"
	"github.com/Holding-1-at-a-time/booking-service/pkg/validate"
)

// UseCase use case для получения свободных слотов на дату
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	settingsRepo SettingsRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Execute возвращает часовую сетку за вычетом занятых слотов.
// Слот считается занятым любым неотмененным бронированием.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if !validate.Date(req.Date) {
		uc.logger.Warn("GetAvailableSlots: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: date must be in YYYY-MM-DD format", ErrInvalidInput)
	}
	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceId must be positive", ErrInvalidInput)
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse date: %v", ErrInternal, err)
	}

	// Услуга в запросе уточняет ответ, но должна существовать
	if req.ServiceID != nil {
		if _, err := uc.serviceRepo.GetByID(ctx, *req.ServiceID); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
	}

	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
			return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		settings = domain.DefaultBookingSettings()
	}

	// В публичной сетке слот скрывают все неотмененные бронирования,
	// включая завершенные
	bookings, err := uc.bookingRepo.GetByDate(ctx, date, domain.GridHiddenStatuses)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	grid := settings.SlotGrid()
	available := make([]types.ClockTime, 0, len(grid))
	booked := 0

	for _, slot := range grid {
		if isBooked(slot, bookings) {
			booked++
			continue
		}
		available = append(available, slot)
	}

	uc.logger.Info("GetAvailableSlots: date=%s, %d/%d slots free",
		req.Date, len(available), len(grid))

	return &Response{
		Date:           date,
		ServiceID:      req.ServiceID,
		AvailableSlots: available,
		TotalSlots:     len(grid),
		BookedSlots:    booked,
	}, nil
}

// isBooked проверяет, занят ли слот одним из бронирований
func isBooked(slot types.ClockTime, bookings []*domain.Booking) bool {
	for _, b := range bookings {
		if b.PreferredTime.Equal(slot) {
			return true
		}
	}
	return false
}

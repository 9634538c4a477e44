package bookings

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	bookingRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/booking"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/bookings/models"
	"github.com/Holding-1-at-a-time/booking-service/pkg/ptr"
	"github.com/Holding-1-at-a-time/booking-service/pkg/validate"
)

// Service сервис для работы с жизненным циклом бронирований
type Service struct {
	bookingRepo  BookingRepository
	activityRepo ActivityLogRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	activityRepo ActivityLogRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		activityRepo: activityRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает бронирование по ID.
// Клиент видит только свои бронирования, админ - любые.
func (s *Service) GetByID(ctx context.Context, id int64, actor auth.Context) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for %s", id, actor.Role)

	booking, err := s.getBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !actor.CanActFor(booking.CustomerEmail) {
		s.logger.Warn("GetByID: access denied to booking id=%d", id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента по email
func (s *Service) GetCustomerBookings(ctx context.Context, email string, actor auth.Context) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for %s", email)

	if !validate.Email(email) {
		return nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}

	if !actor.CanActFor(email) {
		s.logger.Warn("GetCustomerBookings: access denied for history of %s", email)
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.GetByCustomerEmail(ctx, email)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for %s: %v", email, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for %s", len(bookings), email)
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Доступно только админу. Переход проверяется машиной статусов;
// при подтверждении слот перепроверяется в сериализуемой транзакции.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest, actor auth.Context) (*models.BookingResponse, error) {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", id, req.Status)

	if !actor.IsAdmin() {
		s.logger.Warn("UpdateStatus: access denied for booking id=%d", id)
		return nil, ErrAccessDenied
	}

	newStatus, ok := domain.ParseBookingStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, req.Status)
	}

	var notes *string
	if req.Notes != nil {
		notes = ptr.Ptr(validate.Sanitize(*req.Notes))
	}

	err := s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		booking, err := s.getBooking(txCtx, "UpdateStatus", id)
		if err != nil {
			return err
		}

		if !booking.CanTransitionTo(newStatus) {
			s.logger.Warn("UpdateStatus: transition %s -> %s rejected for booking id=%d",
				booking.Status, newStatus, id)
			return fmt.Errorf("%w: cannot move from %s to %s", ErrInvalidTransition, booking.Status, newStatus)
		}

		// Слот мог быть занят, пока заявка ждала подтверждения
		if newStatus == domain.StatusConfirmed {
			if err := s.checkSlotStillFree(txCtx, booking); err != nil {
				return err
			}
		}

		if err := s.bookingRepo.UpdateStatus(txCtx, id, newStatus, notes); err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: booking id=%d moved to status=%s", id, newStatus)

	updated, err := s.getBooking(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	s.writeActivity(ctx, &domain.ActivityLogEntry{
		Action:        domain.ActionBookingUpdated,
		BookingID:     ptr.Ptr(id),
		CustomerEmail: ptr.Ptr(updated.CustomerEmail),
		Metadata: map[string]interface{}{
			"status": string(newStatus),
		},
	})

	return models.FromDomainBooking(updated), nil
}

// Cancel отменяет бронирование.
// Клиент может отменить только свое, админ - любое неконечное.
// Причина отмены дописывается в заметки.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest, actor auth.Context) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !actor.CanActFor(booking.CustomerEmail) {
		s.logger.Warn("Cancel: access denied to booking id=%d", id)
		return nil, ErrAccessDenied
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", id, booking.Status)
		return nil, ErrCannotCancel
	}

	notes := booking.Notes
	if reason := validate.Sanitize(req.Reason); reason != "" {
		notes = ptr.Ptr(appendReason(booking.Notes, reason))
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, domain.StatusCancelled, notes); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled", id)

	s.writeActivity(ctx, &domain.ActivityLogEntry{
		Action:        domain.ActionBookingCancelled,
		BookingID:     ptr.Ptr(id),
		CustomerEmail: ptr.Ptr(booking.CustomerEmail),
		Metadata: map[string]interface{}{
			"reason": req.Reason,
		},
	})

	cancelled, err := s.getBooking(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}
	return models.FromDomainBooking(cancelled), nil
}

// Stats считает счетчики для админского дашборда.
// Выборка ограничена сверху, счетчики по датам сравнивают только дату заявки.
func (s *Service) Stats(ctx context.Context, actor auth.Context) (*models.StatsResponse, error) {
	s.logger.Info("Stats: computing booking stats")

	if !actor.IsAdmin() {
		s.logger.Warn("Stats: access denied")
		return nil, ErrAccessDenied
	}

	bookings, err := s.bookingRepo.ListRecent(ctx, domain.StatsFetchCap)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := today.AddDate(0, 0, -7)
	monthAgo := today.AddDate(0, 0, -30)

	stats := &domain.BookingStats{Total: len(bookings)}
	for _, b := range bookings {
		switch b.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusConfirmed:
			stats.Confirmed++
		case domain.StatusInProgress:
			stats.InProgress++
		case domain.StatusCompleted:
			stats.Completed++
		case domain.StatusCancelled:
			stats.Cancelled++
		}

		date := time.Date(b.PreferredDate.Year(), b.PreferredDate.Month(), b.PreferredDate.Day(), 0, 0, 0, 0, now.Location())
		if date.Equal(today) {
			stats.Today++
		}
		// Скользящие окна считают прошедшие даты, будущие заявки не входят
		if !date.Before(weekAgo) && !date.After(today) {
			stats.ThisWeek++
		}
		if !date.Before(monthAgo) && !date.After(today) {
			stats.ThisMonth++
		}
	}

	s.logger.Info("Stats: %d bookings counted", stats.Total)
	return models.FromDomainStats(stats), nil
}

// Вспомогательные методы

func (s *Service) getBooking(ctx context.Context, method string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", method, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", method, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, method, err)
	}
	return booking, nil
}

// checkSlotStillFree перепроверяет, что слот заявки все еще свободен,
// не считая саму заявку
func (s *Service) checkSlotStillFree(ctx context.Context, booking *domain.Booking) error {
	taken, err := s.bookingRepo.GetByDate(ctx, booking.PreferredDate, domain.SlotFreeingStatuses)
	if err != nil {
		s.logger.Error("UpdateStatus: failed to re-check slot for booking id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: failed to re-check slot: %v", ErrInternal, err)
	}

	for _, b := range taken {
		if b.ID == booking.ID {
			continue
		}
		if b.PreferredTime.Equal(booking.PreferredTime) {
			s.logger.Warn("UpdateStatus: slot for booking id=%d taken by id=%d", booking.ID, b.ID)
			return ErrSlotTaken
		}
	}
	return nil
}

// writeActivity пишет событие в журнал; ошибки записи не валят операцию
func (s *Service) writeActivity(ctx context.Context, entry *domain.ActivityLogEntry) {
	if err := s.activityRepo.Insert(ctx, entry); err != nil {
		s.logger.Warn("writeActivity: failed to write %s: %v", entry.Action, err)
	}
}

// appendReason дописывает причину отмены к существующим заметкам
func appendReason(notes *string, reason string) string {
	line := "Cancellation reason: " + reason
	if notes == nil || strings.TrimSpace(*notes) == "" {
		return line
	}
	return *notes + "\n" + line
}

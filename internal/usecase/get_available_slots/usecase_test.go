package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	serviceRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/service"
	settingsRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/settings"
	"github.com/Holding-1-at-a-time/booking-service/pkg/ptr"
	"github.com/Holding-1-at-a-time/booking-service/pkg/types"
)

// fakeBookingRepo фильтрует по статусам так же, как реальный репозиторий
type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, _ time.Time, excludeStatuses []domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.bookings {
		excluded := false
		for _, s := range excludeStatuses {
			if b.Status == s {
				excluded = true
				break
			}
		}
		if !excluded {
			out = append(out, b)
		}
	}
	return out, nil
}

type fakeServiceRepo struct {
	err error
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Service{ID: id, Slug: "full-detail", Name: "Full Detail", IsActive: true}, nil
}

type fakeSettingsRepo struct{}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.BookingSettings, error) {
	return nil, settingsRepo.ErrSettingsNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func booking(id int64, slot string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{ID: id, PreferredTime: types.ClockTime(slot), Status: status}
}

func TestExecute_FullGridWhenEmpty(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeServiceRepo{}, &fakeSettingsRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-09-15"})
	require.NoError(t, err)

	// Дефолтная сетка: каждый час с 7:00 AM по 9:00 PM
	assert.Equal(t, 15, resp.TotalSlots)
	assert.Equal(t, 0, resp.BookedSlots)
	assert.Len(t, resp.AvailableSlots, 15)
	assert.Equal(t, types.ClockTime("7:00 AM"), resp.AvailableSlots[0])
	assert.Equal(t, types.ClockTime("9:00 PM"), resp.AvailableSlots[14])
}

func TestExecute_BookedSlotsRemoved(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(1, "9:00 AM", domain.StatusPending),
		booking(2, "2:00 PM", domain.StatusConfirmed),
	}}
	uc := NewUseCase(repo, &fakeServiceRepo{}, &fakeSettingsRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-09-15"})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.BookedSlots)
	assert.Len(t, resp.AvailableSlots, 13)
	assert.NotContains(t, resp.AvailableSlots, types.ClockTime("9:00 AM"))
	assert.NotContains(t, resp.AvailableSlots, types.ClockTime("2:00 PM"))
}

func TestExecute_CompletedStillHidesSlot(t *testing.T) {
	// Завершенное бронирование скрывает слот в публичной сетке,
	// хотя для конфликтов при создании оно слот освобождает
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(1, "10:00 AM", domain.StatusCompleted),
	}}
	uc := NewUseCase(repo, &fakeServiceRepo{}, &fakeSettingsRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-09-15"})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.BookedSlots)
	assert.NotContains(t, resp.AvailableSlots, types.ClockTime("10:00 AM"))
}

func TestExecute_CancelledFreesSlot(t *testing.T) {
	repo := &fakeBookingRepo{bookings: []*domain.Booking{
		booking(1, "10:00 AM", domain.StatusCancelled),
	}}
	uc := NewUseCase(repo, &fakeServiceRepo{}, &fakeSettingsRepo{}, nopLogger{})

	resp, err := uc.Execute(context.Background(), &Request{Date: "2026-09-15"})
	require.NoError(t, err)

	assert.Equal(t, 0, resp.BookedSlots)
	assert.Contains(t, resp.AvailableSlots, types.ClockTime("10:00 AM"))
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&fakeBookingRepo{}, &fakeServiceRepo{}, &fakeSettingsRepo{}, nopLogger{})

	_, err := uc.Execute(context.Background(), &Request{Date: "15-09-2026"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: "2026-09-15", ServiceID: ptr.Ptr(int64(-1))})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_UnknownService(t *testing.T) {
	uc := NewUseCase(
		&fakeBookingRepo{},
		&fakeServiceRepo{err: serviceRepo.ErrServiceNotFound},
		&fakeSettingsRepo{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{Date: "2026-09-15", ServiceID: ptr.Ptr(int64(99))})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

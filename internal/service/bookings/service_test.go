package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	bookingRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/booking"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/bookings/models"
	"github.com/Holding-1-at-a-time/booking-service/pkg/ptr"
	"github.com/Holding-1-at-a-time/booking-service/pkg/types"
)

// Фейки зависимостей

type fakeBookingRepo struct {
	byID    map[int64]*domain.Booking
	byEmail map[string][]*domain.Booking
	recent  []*domain.Booking

	updatedID     int64
	updatedStatus domain.BookingStatus
	updatedNotes  *string
}

func newFakeRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	f := &fakeBookingRepo{
		byID:    make(map[int64]*domain.Booking),
		byEmail: make(map[string][]*domain.Booking),
	}
	for _, b := range bookings {
		f.byID[b.ID] = b
		f.byEmail[b.CustomerEmail] = append(f.byEmail[b.CustomerEmail], b)
		f.recent = append(f.recent, b)
	}
	return f
}

func (f *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByDate(_ context.Context, date time.Time, excludeStatuses []domain.BookingStatus) ([]*domain.Booking, error) {
	var out []*domain.Booking
	for _, b := range f.recent {
		if !b.PreferredDate.Equal(date) {
			continue
		}
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

func (f *fakeBookingRepo) GetByCustomerEmail(_ context.Context, email string) ([]*domain.Booking, error) {
	return f.byEmail[email], nil
}

func (f *fakeBookingRepo) ListRecent(_ context.Context, limit int) ([]*domain.Booking, error) {
	if len(f.recent) > limit {
		return f.recent[:limit], nil
	}
	return f.recent, nil
}

func (f *fakeBookingRepo) UpdateStatus(_ context.Context, id int64, status domain.BookingStatus, notes *string) error {
	b, ok := f.byID[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	f.updatedID = id
	f.updatedStatus = status
	f.updatedNotes = notes
	b.Status = status
	if notes != nil {
		b.Notes = notes
	}
	return nil
}

type fakeActivityRepo struct {
	entries []*domain.ActivityLogEntry
}

func (f *fakeActivityRepo) Insert(_ context.Context, e *domain.ActivityLogEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(repo *fakeBookingRepo, activity *fakeActivityRepo) *Service {
	svc := NewService(repo, activity, &fakeTxManager{}, nopLogger{})
	svc.timeProvider = &fixedTimeProvider{now: time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)}
	return svc
}

func testBooking(id int64, email string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		CustomerName:  "Jane Doe",
		CustomerEmail: email,
		CustomerPhone: "(555) 123-4567",
		ServiceID:     1,
		PreferredDate: time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC),
		PreferredTime: types.ClockTime("2:00 PM"),
		VehicleType:   domain.VehicleSUV,
		Status:        status,
	}
}

func TestGetByID_AccessControl(t *testing.T) {
	repo := newFakeRepo(testBooking(1, "jane@example.com", domain.StatusPending))
	svc := newTestService(repo, &fakeActivityRepo{})

	t.Run("owner sees own booking", func(t *testing.T) {
		resp, err := svc.GetByID(context.Background(), 1, auth.Guest("jane@example.com"))
		require.NoError(t, err)
		assert.Equal(t, int64(1), resp.ID)
	})

	t.Run("email comparison is case-insensitive", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, auth.Guest("Jane@Example.COM"))
		assert.NoError(t, err)
	})

	t.Run("other guest is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, auth.Guest("mallory@example.com"))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("anonymous guest is denied", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, auth.Guest(""))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("admin sees any booking", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 1, auth.Admin())
		assert.NoError(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.GetByID(context.Background(), 99, auth.Admin())
		assert.ErrorIs(t, err, ErrBookingNotFound)
	})
}

func TestGetCustomerBookings(t *testing.T) {
	repo := newFakeRepo(
		testBooking(1, "jane@example.com", domain.StatusPending),
		testBooking(2, "jane@example.com", domain.StatusCompleted),
	)
	svc := newTestService(repo, &fakeActivityRepo{})

	resp, err := svc.GetCustomerBookings(context.Background(), "jane@example.com", auth.Guest("jane@example.com"))
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 2)

	_, err = svc.GetCustomerBookings(context.Background(), "jane@example.com", auth.Guest("mallory@example.com"))
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetCustomerBookings(context.Background(), "not-an-email", auth.Admin())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_AdminOnly(t *testing.T) {
	repo := newFakeRepo(testBooking(1, "jane@example.com", domain.StatusPending))
	svc := newTestService(repo, &fakeActivityRepo{})

	req := &models.UpdateStatusRequest{Status: "confirmed"}

	_, err := svc.UpdateStatus(context.Background(), 1, req, auth.Guest("jane@example.com"))
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	tests := []struct {
		name string
		from domain.BookingStatus
		to   string
		ok   bool
	}{
		{"pending to confirmed", domain.StatusPending, "confirmed", true},
		{"confirmed to in_progress", domain.StatusConfirmed, "in_progress", true},
		{"in_progress to completed", domain.StatusInProgress, "completed", true},
		{"pending to completed skips steps", domain.StatusPending, "completed", false},
		{"confirmed back to pending", domain.StatusConfirmed, "pending", false},
		{"completed is terminal", domain.StatusCompleted, "cancelled", false},
		{"cancelled is terminal", domain.StatusCancelled, "confirmed", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeRepo(testBooking(1, "jane@example.com", tt.from))
			svc := newTestService(repo, &fakeActivityRepo{})

			resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to}, auth.Admin())
			if tt.ok {
				require.NoError(t, err)
				assert.Equal(t, tt.to, resp.Status)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	repo := newFakeRepo(testBooking(1, "jane@example.com", domain.StatusPending))
	svc := newTestService(repo, &fakeActivityRepo{})

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "done"}, auth.Admin())
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateStatus_ConfirmRechecksSlot(t *testing.T) {
	pending := testBooking(1, "jane@example.com", domain.StatusPending)
	rival := testBooking(2, "bob@example.com", domain.StatusConfirmed) // тот же слот

	t.Run("slot taken by rival", func(t *testing.T) {
		repo := newFakeRepo(pending, rival)
		svc := newTestService(repo, &fakeActivityRepo{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"}, auth.Admin())
		assert.ErrorIs(t, err, ErrSlotTaken)
	})

	t.Run("own booking does not conflict with itself", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, "jane@example.com", domain.StatusPending))
		svc := newTestService(repo, &fakeActivityRepo{})

		resp, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"}, auth.Admin())
		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
	})

	t.Run("cancelled rival frees the slot", func(t *testing.T) {
		gone := testBooking(2, "bob@example.com", domain.StatusCancelled)
		repo := newFakeRepo(testBooking(1, "jane@example.com", domain.StatusPending), gone)
		svc := newTestService(repo, &fakeActivityRepo{})

		_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"}, auth.Admin())
		assert.NoError(t, err)
	})
}

func TestUpdateStatus_WritesActivity(t *testing.T) {
	repo := newFakeRepo(testBooking(1, "jane@example.com", domain.StatusPending))
	activity := &fakeActivityRepo{}
	svc := newTestService(repo, activity)

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "confirmed"}, auth.Admin())
	require.NoError(t, err)

	require.Len(t, activity.entries, 1)
	assert.Equal(t, domain.ActionBookingUpdated, activity.entries[0].Action)
	assert.Equal(t, int64(1), *activity.entries[0].BookingID)
}

func TestCancel(t *testing.T) {
	t.Run("owner cancels with reason", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, "jane@example.com", domain.StatusConfirmed))
		activity := &fakeActivityRepo{}
		svc := newTestService(repo, activity)

		resp, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Reason: "schedule conflict"}, auth.Guest("jane@example.com"))
		require.NoError(t, err)

		assert.Equal(t, string(domain.StatusCancelled), resp.Status)
		require.NotNil(t, repo.updatedNotes)
		assert.Equal(t, "Cancellation reason: schedule conflict", *repo.updatedNotes)

		require.Len(t, activity.entries, 1)
		assert.Equal(t, domain.ActionBookingCancelled, activity.entries[0].Action)
	})

	t.Run("reason appends to existing notes", func(t *testing.T) {
		b := testBooking(1, "jane@example.com", domain.StatusConfirmed)
		b.Notes = ptr.Ptr("called to confirm")
		repo := newFakeRepo(b)
		svc := newTestService(repo, &fakeActivityRepo{})

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{Reason: "sold the car"}, auth.Admin())
		require.NoError(t, err)
		assert.Equal(t, "called to confirm\nCancellation reason: sold the car", *repo.updatedNotes)
	})

	t.Run("empty reason keeps notes untouched", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, "jane@example.com", domain.StatusPending))
		svc := newTestService(repo, &fakeActivityRepo{})

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{}, auth.Admin())
		require.NoError(t, err)
		assert.Nil(t, repo.updatedNotes)
	})

	t.Run("other guest is denied", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, "jane@example.com", domain.StatusPending))
		svc := newTestService(repo, &fakeActivityRepo{})

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{}, auth.Guest("mallory@example.com"))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		repo := newFakeRepo(testBooking(1, "jane@example.com", domain.StatusCompleted))
		svc := newTestService(repo, &fakeActivityRepo{})

		_, err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{}, auth.Admin())
		assert.ErrorIs(t, err, ErrCannotCancel)
	})
}

func TestStats(t *testing.T) {
	// "Сегодня" в тестах: 2026-09-15
	onDate := func(id int64, status domain.BookingStatus, date string) *domain.Booking {
		b := testBooking(id, "jane@example.com", status)
		d, _ := time.Parse(domain.DateFormat, date)
		b.PreferredDate = d
		return b
	}

	repo := newFakeRepo(
		onDate(1, domain.StatusPending, "2026-09-15"),   // сегодня
		onDate(2, domain.StatusConfirmed, "2026-09-12"), // эта неделя
		onDate(3, domain.StatusCompleted, "2026-08-20"), // этот месяц
		onDate(4, domain.StatusCancelled, "2026-07-01"), // вне окон
		onDate(5, domain.StatusInProgress, "2026-09-15"),
		onDate(6, domain.StatusPending, "2026-09-20"), // будущая дата, в окна не входит
	)
	svc := newTestService(repo, &fakeActivityRepo{})

	t.Run("admin only", func(t *testing.T) {
		_, err := svc.Stats(context.Background(), auth.Guest("jane@example.com"))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("counts by status and window", func(t *testing.T) {
		stats, err := svc.Stats(context.Background(), auth.Admin())
		require.NoError(t, err)

		assert.Equal(t, 6, stats.Total)
		assert.Equal(t, 2, stats.Pending)
		assert.Equal(t, 1, stats.Confirmed)
		assert.Equal(t, 1, stats.InProgress)
		assert.Equal(t, 1, stats.Completed)
		assert.Equal(t, 1, stats.Cancelled)

		assert.Equal(t, 2, stats.Today)
		assert.Equal(t, 3, stats.ThisWeek)
		assert.Equal(t, 4, stats.ThisMonth)
	})
}

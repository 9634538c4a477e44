package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	settingsRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/settings"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/settings/models"
)

// Фейки зависимостей

type fakeSettingsRepo struct {
	settings *domain.BookingSettings
	updated  *domain.BookingSettings
}

func (f *fakeSettingsRepo) Get(_ context.Context) (*domain.BookingSettings, error) {
	if f.settings == nil {
		return nil, settingsRepo.ErrSettingsNotFound
	}
	return f.settings, nil
}

func (f *fakeSettingsRepo) Update(_ context.Context, s *domain.BookingSettings) error {
	f.updated = s
	f.settings = s
	return nil
}

type fakeActivityRepo struct {
	entries []*domain.ActivityLogEntry
}

func (f *fakeActivityRepo) Insert(_ context.Context, e *domain.ActivityLogEntry) error {
	f.entries = append(f.entries, e)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestGet(t *testing.T) {
	t.Run("missing row falls back to defaults", func(t *testing.T) {
		svc := NewService(&fakeSettingsRepo{}, &fakeActivityRepo{}, nopLogger{})

		resp, err := svc.Get(context.Background())
		require.NoError(t, err)

		assert.Equal(t, domain.DefaultOpenHour, resp.OpenHour)
		assert.Equal(t, domain.DefaultCloseHour, resp.CloseHour)
		assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
		assert.Equal(t, domain.DefaultValetFee, resp.ValetFee)
	})

	t.Run("stored row wins", func(t *testing.T) {
		repo := &fakeSettingsRepo{settings: &domain.BookingSettings{OpenHour: 9, CloseHour: 17, AdvanceBookingDays: 14, ValetFee: 25}}
		svc := NewService(repo, &fakeActivityRepo{}, nopLogger{})

		resp, err := svc.Get(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 9, resp.OpenHour)
		assert.Equal(t, 17, resp.CloseHour)
	})
}

func TestUpdate(t *testing.T) {
	valid := &models.UpdateSettingsRequest{OpenHour: 8, CloseHour: 18, AdvanceBookingDays: 21, ValetFee: 15}

	t.Run("admin updates settings", func(t *testing.T) {
		repo := &fakeSettingsRepo{}
		activity := &fakeActivityRepo{}
		svc := NewService(repo, activity, nopLogger{})

		resp, err := svc.Update(context.Background(), valid, auth.Admin())
		require.NoError(t, err)

		assert.Equal(t, 8, resp.OpenHour)
		assert.Equal(t, 18, resp.CloseHour)
		require.NotNil(t, repo.updated)

		require.Len(t, activity.entries, 1)
		assert.Equal(t, domain.ActionSettingsUpdated, activity.entries[0].Action)
	})

	t.Run("guest is denied", func(t *testing.T) {
		svc := NewService(&fakeSettingsRepo{}, &fakeActivityRepo{}, nopLogger{})

		_, err := svc.Update(context.Background(), valid, auth.Guest("jane@example.com"))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("validation accumulates errors", func(t *testing.T) {
		svc := NewService(&fakeSettingsRepo{}, &fakeActivityRepo{}, nopLogger{})

		req := &models.UpdateSettingsRequest{OpenHour: -1, CloseHour: 25, AdvanceBookingDays: -5, ValetFee: -1}
		_, err := svc.Update(context.Background(), req, auth.Admin())
		require.ErrorIs(t, err, ErrValidation)

		assert.Contains(t, err.Error(), "openHour")
		assert.Contains(t, err.Error(), "closeHour")
		assert.Contains(t, err.Error(), "advanceBookingDays")
		assert.Contains(t, err.Error(), "valetFee")
	})

	t.Run("close before open rejected", func(t *testing.T) {
		svc := NewService(&fakeSettingsRepo{}, &fakeActivityRepo{}, nopLogger{})

		req := &models.UpdateSettingsRequest{OpenHour: 18, CloseHour: 9}
		_, err := svc.Update(context.Background(), req, auth.Admin())
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "closeHour must not be before openHour")
	})
}

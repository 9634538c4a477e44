package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	serviceRepo "github.com/Holding-1-at-a-time/booking-service/internal/infra/storage/service"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/catalog/models"
	"github.com/Holding-1-at-a-time/booking-service/pkg/ptr"
)

// Фейки зависимостей

type fakeServiceRepo struct {
	services []*domain.Service

	listedOnlyActive bool
	created          *domain.Service
	updated          *domain.Service
	deletedID        int64
	existingSlugs    map[string]bool
}

func (f *fakeServiceRepo) Create(_ context.Context, svc *domain.Service) (*domain.Service, error) {
	if f.existingSlugs[svc.Slug] {
		return nil, serviceRepo.ErrSlugTaken
	}
	svc.ID = 10
	f.created = svc
	return svc, nil
}

func (f *fakeServiceRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	for _, s := range f.services {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, serviceRepo.ErrServiceNotFound
}

func (f *fakeServiceRepo) GetBySlug(_ context.Context, slug string) (*domain.Service, error) {
	for _, s := range f.services {
		if s.Slug == slug {
			return s, nil
		}
	}
	return nil, serviceRepo.ErrServiceNotFound
}

func (f *fakeServiceRepo) List(_ context.Context, onlyActive bool) ([]*domain.Service, error) {
	f.listedOnlyActive = onlyActive
	var out []*domain.Service
	for _, s := range f.services {
		if onlyActive && !s.IsActive {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeServiceRepo) Update(_ context.Context, svc *domain.Service) error {
	for _, s := range f.services {
		if s.ID == svc.ID {
			f.updated = svc
			return nil
		}
	}
	return serviceRepo.ErrServiceNotFound
}

func (f *fakeServiceRepo) SetActive(_ context.Context, id int64, active bool) error {
	for _, s := range f.services {
		if s.ID == id {
			s.IsActive = active
			return nil
		}
	}
	return serviceRepo.ErrServiceNotFound
}

func (f *fakeServiceRepo) Delete(_ context.Context, id int64) error {
	f.deletedID = id
	return nil
}

type fakeBookingRepo struct {
	count int64
}

func (f *fakeBookingRepo) CountByService(_ context.Context, _ int64) (int64, error) {
	return f.count, nil
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

func catalogService(id int64, slug string, active bool) *domain.Service {
	return &domain.Service{
		ID:       id,
		Slug:     slug,
		Name:     "Full Detail",
		Category: domain.CategoryPrimary,
		IsActive: active,
	}
}

func validData() *models.ServiceData {
	return &models.ServiceData{
		Slug:     "ceramic-coating",
		Name:     "Ceramic Coating",
		Category: "primary",
		Price:    "$499",
	}
}

func TestList_VisibilityByRole(t *testing.T) {
	repo := &fakeServiceRepo{services: []*domain.Service{
		catalogService(1, "full-detail", true),
		catalogService(2, "retired-wax", false),
	}}
	svc := NewService(repo, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

	t.Run("guest sees only active", func(t *testing.T) {
		resp, err := svc.List(context.Background(), auth.Guest(""))
		require.NoError(t, err)
		assert.True(t, repo.listedOnlyActive)
		assert.Len(t, resp.Services, 1)
	})

	t.Run("admin sees everything", func(t *testing.T) {
		resp, err := svc.List(context.Background(), auth.Admin())
		require.NoError(t, err)
		assert.False(t, repo.listedOnlyActive)
		assert.Len(t, resp.Services, 2)
	})
}

func TestGetBySlug(t *testing.T) {
	repo := &fakeServiceRepo{services: []*domain.Service{catalogService(1, "full-detail", true)}}
	svc := NewService(repo, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

	resp, err := svc.GetBySlug(context.Background(), "full-detail")
	require.NoError(t, err)
	assert.Equal(t, "full-detail", resp.Slug)

	_, err = svc.GetBySlug(context.Background(), "no-such")
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestCreate(t *testing.T) {
	t.Run("admin creates service", func(t *testing.T) {
		repo := &fakeServiceRepo{}
		activity := &fakeActivityRepo{}
		svc := NewService(repo, &fakeBookingRepo{}, activity, nopLogger{})

		resp, err := svc.Create(context.Background(), validData(), auth.Admin())
		require.NoError(t, err)

		assert.Equal(t, int64(10), resp.ID)
		assert.True(t, resp.IsActive) // активна по умолчанию

		require.Len(t, activity.entries, 1)
		assert.Equal(t, domain.ActionServiceCreated, activity.entries[0].Action)
	})

	t.Run("guest is denied", func(t *testing.T) {
		svc := NewService(&fakeServiceRepo{}, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

		_, err := svc.Create(context.Background(), validData(), auth.Guest("jane@example.com"))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("slug normalized before validation", func(t *testing.T) {
		repo := &fakeServiceRepo{}
		svc := NewService(repo, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

		data := validData()
		data.Slug = "  Ceramic-Coating  "
		_, err := svc.Create(context.Background(), data, auth.Admin())
		require.NoError(t, err)
		assert.Equal(t, "ceramic-coating", repo.created.Slug)
	})

	t.Run("duplicate slug", func(t *testing.T) {
		repo := &fakeServiceRepo{existingSlugs: map[string]bool{"ceramic-coating": true}}
		svc := NewService(repo, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

		_, err := svc.Create(context.Background(), validData(), auth.Admin())
		assert.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("validation accumulates errors", func(t *testing.T) {
		svc := NewService(&fakeServiceRepo{}, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

		data := &models.ServiceData{Slug: "Not A Slug!", Name: "", Category: "weird", Price: "cheap"}
		_, err := svc.Create(context.Background(), data, auth.Admin())
		require.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "slug")
		assert.Contains(t, err.Error(), "name is required")
		assert.Contains(t, err.Error(), "category")
		assert.Contains(t, err.Error(), "price")
	})

	t.Run("explicit inactive respected", func(t *testing.T) {
		repo := &fakeServiceRepo{}
		svc := NewService(repo, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

		data := validData()
		data.IsActive = ptr.Ptr(false)
		resp, err := svc.Create(context.Background(), data, auth.Admin())
		require.NoError(t, err)
		assert.False(t, resp.IsActive)
	})
}

func TestDelete(t *testing.T) {
	t.Run("unused service deleted", func(t *testing.T) {
		repo := &fakeServiceRepo{services: []*domain.Service{catalogService(1, "full-detail", true)}}
		svc := NewService(repo, &fakeBookingRepo{count: 0}, &fakeActivityRepo{}, nopLogger{})

		err := svc.Delete(context.Background(), 1, auth.Admin())
		require.NoError(t, err)
		assert.Equal(t, int64(1), repo.deletedID)
	})

	t.Run("service with bookings is kept", func(t *testing.T) {
		repo := &fakeServiceRepo{services: []*domain.Service{catalogService(1, "full-detail", true)}}
		svc := NewService(repo, &fakeBookingRepo{count: 3}, &fakeActivityRepo{}, nopLogger{})

		err := svc.Delete(context.Background(), 1, auth.Admin())
		assert.ErrorIs(t, err, ErrServiceInUse)
		assert.Zero(t, repo.deletedID)
	})

	t.Run("guest is denied", func(t *testing.T) {
		svc := NewService(&fakeServiceRepo{}, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

		err := svc.Delete(context.Background(), 1, auth.Guest(""))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewService(&fakeServiceRepo{}, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

		err := svc.Delete(context.Background(), 42, auth.Admin())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestSetActive(t *testing.T) {
	t.Run("admin toggles service", func(t *testing.T) {
		svc1 := catalogService(1, "full-detail", true)
		repo := &fakeServiceRepo{services: []*domain.Service{svc1}}
		activity := &fakeActivityRepo{}
		svc := NewService(repo, &fakeBookingRepo{}, activity, nopLogger{})

		err := svc.SetActive(context.Background(), 1, false, auth.Admin())
		require.NoError(t, err)
		assert.False(t, svc1.IsActive)

		require.Len(t, activity.entries, 1)
		assert.Equal(t, domain.ActionServiceUpdated, activity.entries[0].Action)
	})

	t.Run("guest is denied", func(t *testing.T) {
		svc := NewService(&fakeServiceRepo{}, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

		err := svc.SetActive(context.Background(), 1, false, auth.Guest("jane@example.com"))
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown id", func(t *testing.T) {
		svc := NewService(&fakeServiceRepo{}, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

		err := svc.SetActive(context.Background(), 9, true, auth.Admin())
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}

func TestUpdate(t *testing.T) {
	repo := &fakeServiceRepo{services: []*domain.Service{catalogService(1, "full-detail", true)}}
	svc := NewService(repo, &fakeBookingRepo{}, &fakeActivityRepo{}, nopLogger{})

	data := validData()
	data.Slug = "full-detail"
	_, err := svc.Update(context.Background(), 1, data, auth.Admin())
	require.NoError(t, err)
	assert.Equal(t, int64(1), repo.updated.ID)

	_, err = svc.Update(context.Background(), 99, validData(), auth.Admin())
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

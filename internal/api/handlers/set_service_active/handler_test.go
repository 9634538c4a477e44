package set_service_active

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holding-1-at-a-time/booking-service/internal/auth"
	"github.com/Holding-1-at-a-time/booking-service/internal/service/catalog"
)

type fakeCatalog struct {
	err    error
	id     int64
	active bool
}

func (f *fakeCatalog) SetActive(_ context.Context, id int64, active bool, _ auth.Context) error {
	f.id = id
	f.active = active
	return f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func patchActive(t *testing.T, h *Handler, serviceID, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/services/"+serviceID+"/active",
		bytes.NewReader([]byte(body)))
	req = mux.SetURLVars(req, map[string]string{"serviceId": serviceID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_SetActive(t *testing.T) {
	t.Run("deactivates service", func(t *testing.T) {
		svc := &fakeCatalog{}
		h := NewHandler(svc, nopLogger{})

		rec := patchActive(t, h, "7", `{"isActive":false}`)
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(7), svc.id)
		assert.False(t, svc.active)
	})

	t.Run("bad service id", func(t *testing.T) {
		h := NewHandler(&fakeCatalog{}, nopLogger{})

		rec := patchActive(t, h, "abc", `{"isActive":true}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		h := NewHandler(&fakeCatalog{}, nopLogger{})

		rec := patchActive(t, h, "7", `{`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("access denied", func(t *testing.T) {
		h := NewHandler(&fakeCatalog{err: catalog.ErrAccessDenied}, nopLogger{})

		rec := patchActive(t, h, "7", `{"isActive":true}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("service not found", func(t *testing.T) {
		h := NewHandler(&fakeCatalog{err: catalog.ErrServiceNotFound}, nopLogger{})

		rec := patchActive(t, h, "7", `{"isActive":true}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

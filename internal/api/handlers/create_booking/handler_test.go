package create_booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Holding-1-at-a-time/booking-service/internal/api/handlers"
	createBooking "github.com/Holding-1-at-a-time/booking-service/internal/usecase/create_booking"
	"github.com/Holding-1-at-a-time/booking-service/pkg/types"
)

type fakeUseCase struct {
	resp *createBooking.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *createBooking.Request) (*createBooking.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func postBooking(t *testing.T, h *Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func validBody() *CreateBookingRequest {
	return &CreateBookingRequest{
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		CustomerPhone: "(555) 123-4567",
		ServiceID:     1,
		PreferredDate: "2026-09-15",
		PreferredTime: "2:00 PM",
		VehicleType:   "suv",
	}
}

func TestHandle_Created(t *testing.T) {
	uc := &fakeUseCase{resp: &createBooking.Response{
		ID:            42,
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		ServiceID:     1,
		ServiceName:   "Full Detail",
		Date:          time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Time:          types.ClockTime("2:00 PM"),
		VehicleType:   "suv",
		Status:        "pending",
	}}
	h := NewHandler(uc, nopLogger{})

	rec := postBooking(t, h, validBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2026-09-15", resp.PreferredDate)
	assert.Equal(t, "2:00 PM", resp.PreferredTime)
	assert.Equal(t, "pending", resp.Status)
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"validation", createBooking.ErrValidation, http.StatusUnprocessableEntity},
		{"rate limited", createBooking.ErrRateLimited, http.StatusTooManyRequests},
		{"service not found", createBooking.ErrServiceNotFound, http.StatusNotFound},
		{"service inactive", createBooking.ErrServiceInactive, http.StatusUnprocessableEntity},
		{"slot taken", createBooking.ErrSlotTaken, http.StatusConflict},
		{"past date", createBooking.ErrInvalidDate, http.StatusUnprocessableEntity},
		{"date too far", createBooking.ErrDateTooFarInFuture, http.StatusUnprocessableEntity},
		{"time outside grid", createBooking.ErrInvalidTimeSlot, http.StatusUnprocessableEntity},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeUseCase{err: tt.err}, nopLogger{})

			rec := postBooking(t, h, validBody())
			assert.Equal(t, tt.wantCode, rec.Code)

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestHandle_ValidationMessageStripsPrefix(t *testing.T) {
	wrapped := fmt.Errorf("%w: %s", createBooking.ErrValidation, "name is required; a valid email address is required")
	h := NewHandler(&fakeUseCase{err: wrapped}, nopLogger{})

	rec := postBooking(t, h, validBody())
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "name is required; a valid email address is required", resp.Error)
}

func TestHandle_MalformedBody(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_UnknownFieldRejected(t *testing.T) {
	h := NewHandler(&fakeUseCase{}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings",
		bytes.NewReader([]byte(`{"customerName":"Jane","bogus":true}`)))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

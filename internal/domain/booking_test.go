package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from BookingStatus
		to   BookingStatus
		ok   bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusConfirmed, StatusInProgress, true},
		{StatusInProgress, StatusCompleted, true},
		{StatusPending, StatusCancelled, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusInProgress, StatusCancelled, true},

		// no skipping forward
		{StatusPending, StatusInProgress, false},
		{StatusPending, StatusCompleted, false},
		{StatusConfirmed, StatusCompleted, false},

		// no moving backward
		{StatusConfirmed, StatusPending, false},
		{StatusInProgress, StatusConfirmed, false},

		// terminal states are frozen
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusConfirmed, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
	}

	for _, tt := range tests {
		b := Booking{Status: tt.from}
		assert.Equal(t, tt.ok, b.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestIsActive(t *testing.T) {
	for _, st := range []BookingStatus{StatusPending, StatusConfirmed, StatusInProgress} {
		b := Booking{Status: st}
		assert.True(t, b.IsActive(), "status %s", st)
	}
	for _, st := range []BookingStatus{StatusCancelled, StatusCompleted} {
		b := Booking{Status: st}
		assert.False(t, b.IsActive(), "status %s", st)
	}
}

func TestCanBeCancelled(t *testing.T) {
	assert.True(t, (&Booking{Status: StatusPending}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusConfirmed}).CanBeCancelled())
	assert.True(t, (&Booking{Status: StatusInProgress}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCompleted}).CanBeCancelled())
	assert.False(t, (&Booking{Status: StatusCancelled}).CanBeCancelled())
}

func TestParseBookingStatus(t *testing.T) {
	st, ok := ParseBookingStatus("in_progress")
	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, st)

	_, ok = ParseBookingStatus("rejected")
	assert.False(t, ok)
}

func TestIsValidVehicleType(t *testing.T) {
	assert.True(t, IsValidVehicleType("sedan"))
	assert.True(t, IsValidVehicleType("sports"))
	assert.False(t, IsValidVehicleType("motorcycle"))
	assert.False(t, IsValidVehicleType(""))
}

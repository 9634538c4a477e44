package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Holding-1-at-a-time/booking-service/pkg/types"
)

func TestSlotGrid(t *testing.T) {
	s := DefaultBookingSettings()

	grid := s.SlotGrid()
	assert.Len(t, grid, 15) // 7:00 AM .. 9:00 PM inclusive
	assert.Equal(t, types.ClockTime("7:00 AM"), grid[0])
	assert.Equal(t, types.ClockTime("12:00 PM"), grid[5])
	assert.Equal(t, types.ClockTime("9:00 PM"), grid[len(grid)-1])

	narrow := BookingSettings{OpenHour: 9, CloseHour: 9}
	assert.Equal(t, []types.ClockTime{"9:00 AM"}, narrow.SlotGrid())

	inverted := BookingSettings{OpenHour: 18, CloseHour: 9}
	assert.Empty(t, inverted.SlotGrid())
}

func TestContainsSlot(t *testing.T) {
	s := DefaultBookingSettings()

	assert.True(t, s.ContainsSlot("2:00 PM"))
	assert.True(t, s.ContainsSlot("7:00 AM"))
	assert.True(t, s.ContainsSlot("02:00 pm")) // normalization-insensitive
	assert.False(t, s.ContainsSlot("2:30 PM")) // off-grid minute
	assert.False(t, s.ContainsSlot("6:00 AM")) // before opening
	assert.False(t, s.ContainsSlot("10:00 PM"))
}

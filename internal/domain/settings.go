package domain

import (
	"time"

	"github.com/Holding-1-at-a-time/booking-service/pkg/types"
)

// BookingSettings is the single business-wide configuration row: the hourly
// grid bounds, how far ahead guests may book, and the valet surcharge.
type BookingSettings struct {
	ID                 int64
	OpenHour           int // first bookable slot, 24h clock
	CloseHour          int // last bookable slot, inclusive
	AdvanceBookingDays int
	ValetFee           float64

	UpdatedAt time.Time
}

// DefaultBookingSettings returns the fallback used when the settings row is
// missing.
func DefaultBookingSettings() *BookingSettings {
	return &BookingSettings{
		OpenHour:           DefaultOpenHour,
		CloseHour:          DefaultCloseHour,
		AdvanceBookingDays: DefaultAdvanceBookingDays,
		ValetFee:           DefaultValetFee,
	}
}

// SlotGrid returns the full fixed hourly grid from OpenHour through
// CloseHour inclusive, in chronological order.
func (s *BookingSettings) SlotGrid() []types.ClockTime {
	if s.CloseHour < s.OpenHour {
		return []types.ClockTime{}
	}

	grid := make([]types.ClockTime, 0, s.CloseHour-s.OpenHour+1)
	for hour := s.OpenHour; hour <= s.CloseHour; hour++ {
		grid = append(grid, types.FromMinutes(hour*60))
	}
	return grid
}

// ContainsSlot reports whether t is one of the grid slots.
func (s *BookingSettings) ContainsSlot(t types.ClockTime) bool {
	for _, slot := range s.SlotGrid() {
		if slot.Equal(t) {
			return true
		}
	}
	return false
}

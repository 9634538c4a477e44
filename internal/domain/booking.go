package domain

import (
	"time"

	"github.com/Holding-1-at-a-time/booking-service/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
)

// VehicleType represents the customer's vehicle category
type VehicleType string

const (
	VehicleSedan  VehicleType = "sedan"
	VehicleSUV    VehicleType = "suv"
	VehicleTruck  VehicleType = "truck"
	VehicleVan    VehicleType = "van"
	VehicleCoupe  VehicleType = "coupe"
	VehicleSports VehicleType = "sports"
)

// VehicleTypes lists every accepted vehicle type.
var VehicleTypes = []VehicleType{
	VehicleSedan,
	VehicleSUV,
	VehicleTruck,
	VehicleVan,
	VehicleCoupe,
	VehicleSports,
}

// IsValidVehicleType reports whether s names a known vehicle type.
func IsValidVehicleType(s string) bool {
	for _, v := range VehicleTypes {
		if string(v) == s {
			return true
		}
	}
	return false
}

// Booking represents a single guest reservation request.
// Guests have no account: identity is just name, email and phone.
type Booking struct {
	ID            int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	ServiceID     int64
	PreferredDate time.Time       // calendar date, time part zeroed
	PreferredTime types.ClockTime // "2:00 PM"
	VehicleType   VehicleType
	Message       *string
	Status        BookingStatus
	Notes         *string // admin-only annotation; cancellation reasons fold in here

	// Set once, on first transition into the matching status; never reset.
	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the booking occupies its slot for conflict
// purposes: anything not cancelled and not completed.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusCompleted
}

// IsTerminal reports whether no further transition is allowed.
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeCancelled reports whether the booking may still be cancelled.
// A completed job cannot be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// CanTransitionTo reports whether the status machine admits moving to next.
// Forward path is pending -> confirmed -> in_progress -> completed;
// cancelled is reachable from any non-terminal state.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.IsTerminal() {
		return false
	}

	switch next {
	case StatusConfirmed:
		return b.Status == StatusPending
	case StatusInProgress:
		return b.Status == StatusConfirmed
	case StatusCompleted:
		return b.Status == StatusInProgress
	case StatusCancelled:
		return b.CanBeCancelled()
	default:
		return false
	}
}

// ParseBookingStatus validates a status string.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled:
		return BookingStatus(s), true
	default:
		return "", false
	}
}

// BookingStats is the derived dashboard view over the booking set.
type BookingStats struct {
	Total      int
	Pending    int
	Confirmed  int
	InProgress int
	Completed  int
	Cancelled  int
	Today      int
	ThisWeek   int
	ThisMonth  int
}

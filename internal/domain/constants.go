package domain

// Default booking settings, used when the settings row is missing
const (
	DefaultOpenHour           = 7  // 7:00 AM
	DefaultCloseHour          = 21 // 9:00 PM, last bookable slot
	DefaultAdvanceBookingDays = 30
	DefaultValetFee           = 10.0

	DefaultRateLimitPerHour = 5
)

// Business validation constants
const (
	MinBusinessHour = 0
	MaxBusinessHour = 23

	SlotDurationMinutes = 60 // fixed hourly grid

	MaxNotesLength   = 2000
	MaxMessageLength = 2000

	MinReviewRating = 1
	MaxReviewRating = 5

	// StatsFetchCap bounds the aggregate scan for the dashboard counters
	StatsFetchCap = 5000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// SlotFreeingStatuses are the statuses that release a (date, time) slot for
// rebooking: a cancelled or completed booking no longer occupies its slot.
var SlotFreeingStatuses = []BookingStatus{
	StatusCancelled,
	StatusCompleted,
}

// GridHiddenStatuses are the statuses excluded when computing the public
// availability grid. Unlike the conflict check, a completed booking still
// hides its slot from the grid.
var GridHiddenStatuses = []BookingStatus{
	StatusCancelled,
}

package domain

import "time"

// Activity log action names emitted by the booking core
const (
	ActionBookingCreated   = "booking_created"
	ActionBookingUpdated   = "booking_updated"
	ActionBookingCancelled = "booking_cancelled"
	ActionServiceCreated   = "service_created"
	ActionServiceUpdated   = "service_updated"
	ActionServiceDeleted   = "service_deleted"
	ActionReviewModerated  = "review_moderated"
	ActionSettingsUpdated  = "settings_updated"
)

// ActivityLogEntry is an append-only audit record. The core only writes
// these; they are read back by external audit tooling.
type ActivityLogEntry struct {
	ID            int64
	Action        string
	ActorID       *string
	BookingID     *int64
	CustomerEmail *string
	Metadata      map[string]interface{}
	CreatedAt     time.Time
}

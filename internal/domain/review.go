package domain

import "time"

// Review is customer feedback tied to a service. Created unapproved;
// an admin approves, rejects or features it.
type Review struct {
	ID            int64
	ServiceID     int64
	CustomerName  string
	CustomerEmail string
	Rating        int // 1-5
	Comment       string
	IsApproved    bool
	IsFeatured    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

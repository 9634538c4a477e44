package domain

import "time"

// ServiceCategory splits the catalog into headline and add-on offerings
type ServiceCategory string

const (
	CategoryPrimary    ServiceCategory = "primary"
	CategoryAdditional ServiceCategory = "additional"
)

// ParseServiceCategory validates a category string.
func ParseServiceCategory(s string) (ServiceCategory, bool) {
	switch ServiceCategory(s) {
	case CategoryPrimary, CategoryAdditional:
		return ServiceCategory(s), true
	default:
		return "", false
	}
}

// ProcessStep is one ordered step of how a service is performed.
type ProcessStep struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Service is a bookable offering. Slug is globally unique. A service with
// referencing bookings can only be deactivated, never hard-deleted.
type Service struct {
	ID           int64
	Slug         string
	Name         string
	Category     ServiceCategory
	Description  string
	Features     []string
	Price        string // display string, e.g. "$199+"
	Duration     string // display string, e.g. "3-4 hours"
	ProcessSteps []ProcessStep
	IsActive     bool
	SortOrder    int

	CreatedAt time.Time
	UpdatedAt time.Time
}

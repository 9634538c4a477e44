package get_available_slots

import (
	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	getAvailableSlots "github.com/Holding-1-at-a-time/booking-service/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date           string   `json:"date"`
	ServiceID      *int64   `json:"serviceId,omitempty"`
	AvailableSlots []string `json:"availableSlots"`
	TotalSlots     int      `json:"totalSlots"`
	BookedSlots    int      `json:"bookedSlots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, 0, len(resp.AvailableSlots))
	for _, slot := range resp.AvailableSlots {
		slots = append(slots, string(slot))
	}

	return &AvailableSlotsResponse{
		Date:           resp.Date.Format(domain.DateFormat),
		ServiceID:      resp.ServiceID,
		AvailableSlots: slots,
		TotalSlots:     resp.TotalSlots,
		BookedSlots:    resp.BookedSlots,
	}
}

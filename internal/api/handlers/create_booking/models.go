package create_booking

import (
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
	createBooking "github.com/Holding-1-at-a-time/booking-service/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	ServiceID     int64   `json:"serviceId"`
	PreferredDate string  `json:"preferredDate"` // "2026-09-15"
	PreferredTime string  `json:"preferredTime"` // "2:00 PM"
	VehicleType   string  `json:"vehicleType"`
	Message       *string `json:"message,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64   `json:"id"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	ServiceID     int64   `json:"serviceId"`
	ServiceName   string  `json:"serviceName"`
	PreferredDate string  `json:"preferredDate"`
	PreferredTime string  `json:"preferredTime"`
	VehicleType   string  `json:"vehicleType"`
	Message       *string `json:"message,omitempty"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		CustomerName:  r.CustomerName,
		CustomerEmail: r.CustomerEmail,
		CustomerPhone: r.CustomerPhone,
		ServiceID:     r.ServiceID,
		Date:          r.PreferredDate,
		Time:          r.PreferredTime,
		VehicleType:   r.VehicleType,
		Message:       r.Message,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		CustomerName:  resp.CustomerName,
		CustomerEmail: resp.CustomerEmail,
		CustomerPhone: resp.CustomerPhone,
		ServiceID:     resp.ServiceID,
		ServiceName:   resp.ServiceName,
		PreferredDate: resp.Date.Format(domain.DateFormat),
		PreferredTime: string(resp.Time),
		VehicleType:   resp.VehicleType,
		Message:       resp.Message,
		Status:        resp.Status,
		CreatedAt:     resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}

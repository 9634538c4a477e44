package models

import (
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	Reason string `json:"reason,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64   `json:"id"`
	CustomerName  string  `json:"customerName"`
	CustomerEmail string  `json:"customerEmail"`
	CustomerPhone string  `json:"customerPhone"`
	ServiceID     int64   `json:"serviceId"`
	PreferredDate string  `json:"preferredDate"` // "2026-09-15"
	PreferredTime string  `json:"preferredTime"` // "2:00 PM"
	VehicleType   string  `json:"vehicleType"`
	Message       *string `json:"message,omitempty"`
	Status        string  `json:"status"`
	Notes         *string `json:"notes,omitempty"`

	ConfirmedAt *string `json:"confirmedAt,omitempty"` // ISO 8601
	CompletedAt *string `json:"completedAt,omitempty"`
	CancelledAt *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// StatsResponse ответ со счетчиками для дашборда
type StatsResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Confirmed  int `json:"confirmed"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Cancelled  int `json:"cancelled"`
	Today      int `json:"today"`
	ThisWeek   int `json:"thisWeek"`
	ThisMonth  int `json:"thisMonth"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:            b.ID,
		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,
		CustomerPhone: b.CustomerPhone,
		ServiceID:     b.ServiceID,
		PreferredDate: b.PreferredDate.Format(domain.DateFormat),
		PreferredTime: string(b.PreferredTime),
		VehicleType:   string(b.VehicleType),
		Message:       b.Message,
		Status:        string(b.Status),
		Notes:         b.Notes,
		ConfirmedAt:   formatTimePtr(b.ConfirmedAt),
		CompletedAt:   formatTimePtr(b.CompletedAt),
		CancelledAt:   formatTimePtr(b.CancelledAt),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, booking := range bookings {
		if bookingResp := FromDomainBooking(booking); bookingResp != nil {
			resp.Bookings = append(resp.Bookings, *bookingResp)
		}
	}

	return resp
}

// FromDomainStats конвертирует счетчики в DTO
func FromDomainStats(s *domain.BookingStats) *StatsResponse {
	return &StatsResponse{
		Total:      s.Total,
		Pending:    s.Pending,
		Confirmed:  s.Confirmed,
		InProgress: s.InProgress,
		Completed:  s.Completed,
		Cancelled:  s.Cancelled,
		Today:      s.Today,
		ThisWeek:   s.ThisWeek,
		ThisMonth:  s.ThisMonth,
	}
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	formatted := t.Format(time.RFC3339)
	return &formatted
}

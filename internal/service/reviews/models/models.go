package models

import (
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
)

// Request модели

// CreateReviewRequest запрос на создание отзыва
type CreateReviewRequest struct {
	ServiceID     int64  `json:"serviceId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
	Rating        int    `json:"rating"`
	Comment       string `json:"comment"`
}

// ModerateReviewRequest запрос на модерацию отзыва
type ModerateReviewRequest struct {
	IsApproved bool `json:"isApproved"`
	IsFeatured bool `json:"isFeatured"`
}

// Response модели

// ReviewResponse ответ с данными отзыва
type ReviewResponse struct {
	ID           int64  `json:"id"`
	ServiceID    int64  `json:"serviceId"`
	CustomerName string `json:"customerName"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	IsApproved   bool   `json:"isApproved"`
	IsFeatured   bool   `json:"isFeatured"`

	CreatedAt time.Time `json:"createdAt"`
}

// ReviewListResponse ответ со списком отзывов
type ReviewListResponse struct {
	Reviews []ReviewResponse `json:"reviews"`
}

// Методы конвертации

// FromDomainReview конвертирует domain модель в DTO.
// Email клиента наружу не отдается.
func FromDomainReview(r *domain.Review) *ReviewResponse {
	if r == nil {
		return nil
	}
	return &ReviewResponse{
		ID:           r.ID,
		ServiceID:    r.ServiceID,
		CustomerName: r.CustomerName,
		Rating:       r.Rating,
		Comment:      r.Comment,
		IsApproved:   r.IsApproved,
		IsFeatured:   r.IsFeatured,
		CreatedAt:    r.CreatedAt,
	}
}

// FromDomainReviewList конвертирует список domain моделей в DTO
func FromDomainReviewList(reviews []*domain.Review) *ReviewListResponse {
	resp := &ReviewListResponse{
		Reviews: make([]ReviewResponse, 0, len(reviews)),
	}
	for _, r := range reviews {
		if reviewResp := FromDomainReview(r); reviewResp != nil {
			resp.Reviews = append(resp.Reviews, *reviewResp)
		}
	}
	return resp
}

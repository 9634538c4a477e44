package models

import (
	"time"

	"github.com/Holding-1-at-a-time/booking-service/internal/domain"
)

// Request модели

// ProcessStepData один шаг выполнения услуги
type ProcessStepData struct {
	Step        int    `json:"step"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// ServiceData данные услуги для создания и обновления
type ServiceData struct {
	Slug         string            `json:"slug"`
	Name         string            `json:"name"`
	Category     string            `json:"category"`
	Description  string            `json:"description"`
	Features     []string          `json:"features"`
	Price        string            `json:"price"`
	Duration     string            `json:"duration"`
	ProcessSteps []ProcessStepData `json:"processSteps"`
	IsActive     *bool             `json:"isActive,omitempty"`
	SortOrder    int               `json:"sortOrder"`
}

// Response модели

// ServiceResponse ответ с данными услуги
type ServiceResponse struct {
	ID           int64             `json:"id"`
	Slug         string            `json:"slug"`
	Name         string            `json:"name"`
	Category     string            `json:"category"`
	Description  string            `json:"description"`
	Features     []string          `json:"features"`
	Price        string            `json:"price"`
	Duration     string            `json:"duration"`
	ProcessSteps []ProcessStepData `json:"processSteps"`
	IsActive     bool              `json:"isActive"`
	SortOrder    int               `json:"sortOrder"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceListResponse ответ со списком услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// Методы конвертации

// ToDomainService конвертирует данные запроса в domain модель
func (d *ServiceData) ToDomainService() *domain.Service {
	steps := make([]domain.ProcessStep, 0, len(d.ProcessSteps))
	for _, s := range d.ProcessSteps {
		steps = append(steps, domain.ProcessStep{
			Step:        s.Step,
			Title:       s.Title,
			Description: s.Description,
		})
	}

	features := d.Features
	if features == nil {
		features = []string{}
	}

	isActive := true
	if d.IsActive != nil {
		isActive = *d.IsActive
	}

	return &domain.Service{
		Slug:         d.Slug,
		Name:         d.Name,
		Category:     domain.ServiceCategory(d.Category),
		Description:  d.Description,
		Features:     features,
		Price:        d.Price,
		Duration:     d.Duration,
		ProcessSteps: steps,
		IsActive:     isActive,
		SortOrder:    d.SortOrder,
	}
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}

	steps := make([]ProcessStepData, 0, len(s.ProcessSteps))
	for _, step := range s.ProcessSteps {
		steps = append(steps, ProcessStepData{
			Step:        step.Step,
			Title:       step.Title,
			Description: step.Description,
		})
	}

	return &ServiceResponse{
		ID:           s.ID,
		Slug:         s.Slug,
		Name:         s.Name,
		Category:     string(s.Category),
		Description:  s.Description,
		Features:     s.Features,
		Price:        s.Price,
		Duration:     s.Duration,
		ProcessSteps: steps,
		IsActive:     s.IsActive,
		SortOrder:    s.SortOrder,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список domain моделей в DTO
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{
		Services: make([]ServiceResponse, 0, len(services)),
	}
	for _, s := range services {
		if svcResp := FromDomainService(s); svcResp != nil {
			resp.Services = append(resp.Services, *svcResp)
		}
	}
	return resp
}

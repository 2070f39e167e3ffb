package models

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// ServiceRequest создание или полное обновление услуги
type ServiceRequest struct {
	CategoryID      *int64  `json:"categoryId,omitempty"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"durationMinutes"`
	Price           float64 `json:"price"`
	ImageURL        *string `json:"imageUrl,omitempty"`
	IsActive        *bool   `json:"isActive,omitempty"` // по умолчанию true
}

// ToDomain конвертирует запрос в domain модель
func (r *ServiceRequest) ToDomain() *domain.Service {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &domain.Service{
		CategoryID:      r.CategoryID,
		Name:            r.Name,
		Description:     r.Description,
		DurationMinutes: r.DurationMinutes,
		Price:           r.Price,
		ImageURL:        r.ImageURL,
		IsActive:        active,
	}
}

// CategoryRequest создание или обновление категории
type CategoryRequest struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sortOrder"`
}

// ServiceResponse услуга
type ServiceResponse struct {
	ID              int64     `json:"id"`
	CategoryID      *int64    `json:"categoryId,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"durationMinutes"`
	Price           float64   `json:"price"`
	ImageURL        *string   `json:"imageUrl,omitempty"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []ServiceResponse `json:"services"`
}

// CategoryResponse категория
type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	SortOrder int       `json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryListResponse список категорий
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// FromDomainService конвертирует domain модель в DTO
func FromDomainService(s *domain.Service) *ServiceResponse {
	if s == nil {
		return nil
	}
	return &ServiceResponse{
		ID:              s.ID,
		CategoryID:      s.CategoryID,
		Name:            s.Name,
		Description:     s.Description,
		DurationMinutes: s.DurationMinutes,
		Price:           s.Price,
		ImageURL:        s.ImageURL,
		IsActive:        s.IsActive,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

// FromDomainServiceList конвертирует список услуг
func FromDomainServiceList(services []*domain.Service) *ServiceListResponse {
	resp := &ServiceListResponse{Services: make([]ServiceResponse, 0, len(services))}
	for _, s := range services {
		resp.Services = append(resp.Services, *FromDomainService(s))
	}
	return resp
}

// FromDomainCategory конвертирует категорию
func FromDomainCategory(c *domain.ServiceCategory) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		SortOrder: c.SortOrder,
		CreatedAt: c.CreatedAt,
	}
}

// FromDomainCategoryList конвертирует список категорий
func FromDomainCategoryList(categories []*domain.ServiceCategory) *CategoryListResponse {
	resp := &CategoryListResponse{Categories: make([]CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		resp.Categories = append(resp.Categories, *FromDomainCategory(c))
	}
	return resp
}

package domain

import "time"

// ServiceCategory groups services in the public catalogue
type ServiceCategory struct {
	ID        int64
	Name      string
	SortOrder int
	CreatedAt time.Time
}

// Service is a bookable salon service
type Service struct {
	ID              int64
	CategoryID      *int64
	Name            string
	Description     string
	DurationMinutes int
	Price           float64
	ImageURL        *string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsBookable returns true if customers may book the service
func (s *Service) IsBookable() bool {
	return s.IsActive && s.DurationMinutes >= MinServiceDurationMinutes && s.DurationMinutes <= MaxServiceDurationMinutes
}

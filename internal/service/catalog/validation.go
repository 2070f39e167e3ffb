package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/m04kA/salon-booking-service/internal/domain"
	"github.com/m04kA/salon-booking-service/internal/service/catalog/models"
)

const (
	maxServiceNameLength  = 120
	maxDescriptionLength  = 2000
	maxCategoryNameLength = 80
)

func validateService(req *models.ServiceRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxServiceNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, maxServiceNameLength)
	}
	if len(req.Description) > maxDescriptionLength {
		return fmt.Errorf("%w: description is too long", ErrInvalidInput)
	}
	if req.DurationMinutes < domain.MinServiceDurationMinutes || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinServiceDurationMinutes, domain.MaxServiceDurationMinutes)
	}
	if req.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	if req.CategoryID != nil && *req.CategoryID <= 0 {
		return fmt.Errorf("%w: categoryId must be positive", ErrInvalidInput)
	}
	if req.ImageURL != nil && *req.ImageURL != "" {
		u, err := url.Parse(*req.ImageURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: imageUrl must be an absolute http(s) URL", ErrInvalidInput)
		}
	}
	return nil
}

func validateCategory(req *models.CategoryRequest) error {
	name := strings.TrimSpace(req.Name)
	if name == "" || len(name) > maxCategoryNameLength {
		return fmt.Errorf("%w: name must be 1-%d characters", ErrInvalidInput, maxCategoryNameLength)
	}
	return nil
}

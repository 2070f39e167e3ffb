package catalog

import (
	"context"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// CatalogRepository интерфейс репозитория услуг и категорий
type CatalogRepository interface {
	GetServiceByID(ctx context.Context, id int64) (*domain.Service, error)
	ListServices(ctx context.Context, onlyActive bool) ([]*domain.Service, error)
	CreateService(ctx context.Context, service *domain.Service) (*domain.Service, error)
	UpdateService(ctx context.Context, service *domain.Service) error
	DeleteService(ctx context.Context, id int64) error
	ListCategories(ctx context.Context) ([]*domain.ServiceCategory, error)
	CreateCategory(ctx context.Context, category *domain.ServiceCategory) (*domain.ServiceCategory, error)
	UpdateCategory(ctx context.Context, category *domain.ServiceCategory) error
	DeleteCategory(ctx context.Context, id int64) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

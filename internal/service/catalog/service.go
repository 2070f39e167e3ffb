package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/salon-booking-service/internal/domain"
	catalogRepo "github.com/m04kA/salon-booking-service/internal/infra/storage/catalog"
	"github.com/m04kA/salon-booking-service/internal/service/catalog/models"
)

// Service сервис каталога услуг
type Service struct {
	repo   CatalogRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// ListServices возвращает услуги; публичный каталог показывает только активные
func (s *Service) ListServices(ctx context.Context, onlyActive bool) (*models.ServiceListResponse, error) {
	services, err := s.repo.ListServices(ctx, onlyActive)
	if err != nil {
		s.logger.Error("ListServices: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListServices - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainServiceList(services), nil
}

// GetService получает услугу по ID
func (s *Service) GetService(ctx context.Context, id int64) (*models.ServiceResponse, error) {
	service, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, s.mapError("GetService", err)
	}
	return models.FromDomainService(service), nil
}

// CreateService создает услугу
func (s *Service) CreateService(ctx context.Context, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	if err := validateService(req); err != nil {
		s.logger.Warn("CreateService: validation failed: %v", err)
		return nil, err
	}

	service := req.ToDomain()
	service.Name = strings.TrimSpace(service.Name)

	created, err := s.repo.CreateService(ctx, service)
	if err != nil {
		return nil, s.mapError("CreateService", err)
	}

	s.logger.Info("CreateService: created service id=%d name=%q", created.ID, created.Name)
	return models.FromDomainService(created), nil
}

// UpdateService полностью обновляет услугу
// Уже созданные бронирования сохраняют денормализованные название, цену и длительность
func (s *Service) UpdateService(ctx context.Context, id int64, req *models.ServiceRequest) (*models.ServiceResponse, error) {
	if err := validateService(req); err != nil {
		s.logger.Warn("UpdateService: validation failed for id=%d: %v", id, err)
		return nil, err
	}

	service := req.ToDomain()
	service.ID = id
	service.Name = strings.TrimSpace(service.Name)

	if err := s.repo.UpdateService(ctx, service); err != nil {
		return nil, s.mapError("UpdateService", err)
	}

	updated, err := s.repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, s.mapError("UpdateService", err)
	}

	s.logger.Info("UpdateService: updated service id=%d", id)
	return models.FromDomainService(updated), nil
}

// DeleteService удаляет услугу без истории бронирований
func (s *Service) DeleteService(ctx context.Context, id int64) error {
	if err := s.repo.DeleteService(ctx, id); err != nil {
		return s.mapError("DeleteService", err)
	}
	s.logger.Info("DeleteService: deleted service id=%d", id)
	return nil
}

// ListCategories возвращает все категории
func (s *Service) ListCategories(ctx context.Context) (*models.CategoryListResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		s.logger.Error("ListCategories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListCategories - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainCategoryList(categories), nil
}

// CreateCategory создает категорию
func (s *Service) CreateCategory(ctx context.Context, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	if err := validateCategory(req); err != nil {
		return nil, err
	}

	created, err := s.repo.CreateCategory(ctx, &domain.ServiceCategory{
		Name:      strings.TrimSpace(req.Name),
		SortOrder: req.SortOrder,
	})
	if err != nil {
		return nil, s.mapError("CreateCategory", err)
	}

	s.logger.Info("CreateCategory: created category id=%d", created.ID)
	return models.FromDomainCategory(created), nil
}

// UpdateCategory переименовывает категорию
func (s *Service) UpdateCategory(ctx context.Context, id int64, req *models.CategoryRequest) (*models.CategoryResponse, error) {
	if err := validateCategory(req); err != nil {
		return nil, err
	}

	category := &domain.ServiceCategory{ID: id, Name: strings.TrimSpace(req.Name), SortOrder: req.SortOrder}
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, s.mapError("UpdateCategory", err)
	}

	return models.FromDomainCategory(category), nil
}

// DeleteCategory удаляет категорию
func (s *Service) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		return s.mapError("DeleteCategory", err)
	}
	s.logger.Info("DeleteCategory: deleted category id=%d", id)
	return nil
}

func (s *Service) mapError(op string, err error) error {
	switch {
	case errors.Is(err, catalogRepo.ErrServiceNotFound):
		s.logger.Warn("%s: service not found", op)
		return ErrServiceNotFound
	case errors.Is(err, catalogRepo.ErrCategoryNotFound):
		s.logger.Warn("%s: category not found", op)
		return ErrCategoryNotFound
	case errors.Is(err, catalogRepo.ErrDuplicateCategory):
		return ErrCategoryExists
	case errors.Is(err, catalogRepo.ErrServiceInUse):
		return ErrServiceInUse
	default:
		s.logger.Error("%s: repository error: %v", op, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

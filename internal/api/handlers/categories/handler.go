package categories

import (
	"errors"
	"net/http"

	"github.com/m04kA/salon-booking-service/internal/api/handlers"
	"github.com/m04kA/salon-booking-service/internal/service/catalog"
	"github.com/m04kA/salon-booking-service/internal/service/catalog/models"
)

const (
	msgInvalidCategoryID  = "некорректный ID категории"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidCategory    = "некорректные данные категории"
	msgCategoryNotFound   = "категория не найдена"
	msgCategoryExists     = "категория с таким названием уже существует"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/categories
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("GET /categories - Failed to list categories: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/admin/categories
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/categories - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateCategory(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /admin/categories", 0, err)
		return
	}

	h.logger.Info("POST /admin/categories - Category created successfully: category_id=%d", result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PUT /api/v1/admin/categories/{id}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	categoryID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("PUT /admin/categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	var req models.CategoryRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/categories/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateCategory(r.Context(), categoryID, &req)
	if err != nil {
		h.respondError(w, "PUT /admin/categories/{id}", categoryID, err)
		return
	}

	h.logger.Info("PUT /admin/categories/{id} - Category updated successfully: category_id=%d", categoryID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/admin/categories/{id}
// Услуги категории остаются без категории
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	categoryID, err := handlers.PathID(r, "id")
	if err != nil {
		h.logger.Warn("DELETE /admin/categories/{id} - Invalid category ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCategoryID)
		return
	}

	if err := h.service.DeleteCategory(r.Context(), categoryID); err != nil {
		h.respondError(w, "DELETE /admin/categories/{id}", categoryID, err)
		return
	}

	h.logger.Info("DELETE /admin/categories/{id} - Category deleted successfully: category_id=%d", categoryID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, categoryID int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrCategoryNotFound):
		h.logger.Warn("%s - Category not found: category_id=%d", route, categoryID)
		handlers.RespondNotFound(w, msgCategoryNotFound)

	case errors.Is(err, catalog.ErrCategoryExists):
		h.logger.Warn("%s - Duplicate category name", route)
		handlers.RespondConflict(w, msgCategoryExists)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid category: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidCategory)

	default:
		h.logger.Error("%s - Failed: category_id=%d, error=%v", route, categoryID, err)
		handlers.RespondInternalError(w)
	}
}

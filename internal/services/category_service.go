package services

import (
	"context"

	"github.com/isdelr/interview-vault-be/internal/models"
	"github.com/isdelr/interview-vault-be/internal/store"
)

// CategoryServiceProvider defines the interface for category services.
type CategoryServiceProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
}

// CategoryService lists categories.
type CategoryService struct {
	categories store.CategoryStore
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories store.CategoryStore) *CategoryService {
	return &CategoryService{categories: categories}
}

// GetAllCategories returns every category ordered by name.
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]models.Category, error) {
	return s.categories.List(ctx)
}

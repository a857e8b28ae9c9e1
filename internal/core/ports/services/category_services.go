package services

import (
	"context"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
)

// CategorySvcFacade defines the category operations of the entity store.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
	"github.com/google/uuid"
)

// categoryServiceImpl implements the CategorySvcFacade interface.
type categoryServiceImpl struct {
	BaseService
	categoryRepo portsrepo.CategoryRepository
}

// NewCategoryServiceImpl creates a new category service.
func NewCategoryServiceImpl(repo portsrepo.CategoryRepository) portssvc.CategorySvcFacade {
	return &categoryServiceImpl{categoryRepo: repo}
}

var _ portssvc.CategorySvcFacade = (*categoryServiceImpl)(nil)

func (s *categoryServiceImpl) CreateCategory(ctx context.Context, req dto.CreateCategoryRequest) (*domain.Category, error) {
	now := time.Now().UTC()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		Name:       req.Name,
		Icon:       req.Icon,
		Type:       req.Type,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryServiceImpl) GetCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryServiceImpl) ListCategories(ctx context.Context, params dto.ListCategoriesParams) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, domain.TransactionType(params.Type), params.Limit, params.Offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryServiceImpl) UpdateCategory(ctx context.Context, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.GetCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		category.Name = *req.Name
		updated = true
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
		updated = true
	}
	if !updated {
		return category, nil
	}

	category.LastUpdatedAt = time.Now().UTC()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}
	return category, nil
}

// DeleteCategory removes the category without cascading; transactions and
// budgets keep a dangling reference resolved as "uncategorized".
func (s *categoryServiceImpl) DeleteCategory(ctx context.Context, categoryID string) error {
	if _, err := s.GetCategoryByID(ctx, categoryID); err != nil {
		return err
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return err
	}

	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}

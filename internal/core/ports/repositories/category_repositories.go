package repositories

import (
	"context"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
)

// CategoryRepository defines persistence operations for categories.
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, categoryType domain.TransactionType, limit int, offset int) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category without cascading; transactions and
	// budgets referencing it keep a dangling reference.
	DeleteCategory(ctx context.Context, categoryID string) error
}

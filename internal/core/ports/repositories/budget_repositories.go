package repositories

import (
	"context"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
)

// BudgetRepository defines persistence operations for budgets.
type BudgetRepository interface {
	SaveBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string) error
}

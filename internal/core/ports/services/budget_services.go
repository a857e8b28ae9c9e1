package services

import (
	"context"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
)

// BudgetSvcFacade defines budget CRUD and read-side evaluation.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, limit, offset int) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, budgetID string) error

	// EvaluateBudget computes spend-to-date and alert state for the budget
	// window at the given instant. Pure read; performs no mutation.
	EvaluateBudget(ctx context.Context, budgetID string, now time.Time) (*dto.BudgetEvaluationResponse, error)
}

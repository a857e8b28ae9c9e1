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
	"github.com/shopspring/decimal"
)

// budgetServiceImpl implements the BudgetSvcFacade interface. Evaluation is
// a pure read over the current store snapshot; CRUD owns the
// startDate <= endDate invariant.
type budgetServiceImpl struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepository
	txnRepo      portsrepo.TransactionReader
	settingsRepo portsrepo.SettingsRepository
}

// NewBudgetServiceImpl creates a new budget service.
func NewBudgetServiceImpl(budgetRepo portsrepo.BudgetRepository, txnRepo portsrepo.TransactionReader, settingsRepo portsrepo.SettingsRepository) portssvc.BudgetSvcFacade {
	return &budgetServiceImpl{
		budgetRepo:   budgetRepo,
		txnRepo:      txnRepo,
		settingsRepo: settingsRepo,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetServiceImpl)(nil)

func (s *budgetServiceImpl) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if req.StartDate.After(req.EndDate) {
		return nil, fmt.Errorf("%w: budget startDate is after endDate", apperrors.ErrValidation)
	}
	if req.TotalAmount.IsNegative() {
		return nil, fmt.Errorf("%w: budget total amount must not be negative", apperrors.ErrValidation)
	}

	categoryID := ""
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}

	now := time.Now().UTC()
	budget := domain.Budget{
		BudgetID:    uuid.NewString(),
		Period:      req.Period,
		TotalAmount: req.TotalAmount,
		CategoryID:  categoryID,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget created",
		slog.String("budget_id", budget.BudgetID),
		slog.String("period", string(budget.Period)))
	return &budget, nil
}

func (s *budgetServiceImpl) GetBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget", slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	return budget, nil
}

func (s *budgetServiceImpl) ListBudgets(ctx context.Context, limit, offset int) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets")
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *budgetServiceImpl) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Period != nil {
		budget.Period = *req.Period
		updated = true
	}
	if req.TotalAmount != nil {
		if req.TotalAmount.IsNegative() {
			return nil, fmt.Errorf("%w: budget total amount must not be negative", apperrors.ErrValidation)
		}
		budget.TotalAmount = *req.TotalAmount
		updated = true
	}
	if req.CategoryID != nil {
		budget.CategoryID = *req.CategoryID
		updated = true
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
		updated = true
	}
	if req.EndDate != nil {
		budget.EndDate = *req.EndDate
		updated = true
	}
	if !updated {
		return budget, nil
	}

	if budget.StartDate.After(budget.EndDate) {
		return nil, fmt.Errorf("%w: budget startDate is after endDate", apperrors.ErrValidation)
	}

	budget.LastUpdatedAt = time.Now().UTC()

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, err
	}
	return budget, nil
}

func (s *budgetServiceImpl) DeleteBudget(ctx context.Context, budgetID string) error {
	if _, err := s.GetBudgetByID(ctx, budgetID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return err
	}

	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

// EvaluateBudget sums expense transactions dated inside the budget window
// (filtered by category when the budget has one) and derives usage against
// the configured alert threshold. A zero total amount evaluates to zero
// percent used and never trips the threshold.
func (s *budgetServiceImpl) EvaluateBudget(ctx context.Context, budgetID string, now time.Time) (*dto.BudgetEvaluationResponse, error) {
	budget, err := s.GetBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetSettings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to load settings for budget evaluation")
		return nil, err
	}

	filter := portsrepo.TransactionFilter{
		Type:       domain.Expense,
		CategoryID: budget.CategoryID,
		From:       &budget.StartDate,
		To:         &budget.EndDate,
	}

	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for budget evaluation", slog.String("budget_id", budgetID))
		return nil, fmt.Errorf("failed to list transactions for budget %s: %w", budgetID, err)
	}

	spent := decimal.Zero
	for _, txn := range txns {
		spent = spent.Add(txn.Amount)
	}

	percentUsed := 0.0
	overThreshold := false
	if budget.TotalAmount.IsPositive() {
		percentUsed, _ = spent.Div(budget.TotalAmount).Float64()
		overThreshold = percentUsed >= settings.BudgetAlertThreshold
	}

	return &dto.BudgetEvaluationResponse{
		BudgetID:        budget.BudgetID,
		Spent:           spent,
		Remaining:       budget.TotalAmount.Sub(spent),
		PercentUsed:     percentUsed,
		IsOverThreshold: overThreshold,
		IsExpired:       now.After(budget.EndDate),
	}, nil
}

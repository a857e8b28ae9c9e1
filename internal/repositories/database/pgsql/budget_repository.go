package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxBudgetRepository persists budgets in PostgreSQL.
type PgxBudgetRepository struct {
	baseRepository
}

// NewBudgetRepository creates a new repository for budget data.
func NewBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{baseRepository{pool: pool}}
}

var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

const budgetColumns = `budget_id, period, total_amount, category_id, start_date, end_date, created_at, last_updated_at`

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var b domain.Budget
	var categoryID sql.NullString
	err := row.Scan(
		&b.BudgetID,
		&b.Period,
		&b.TotalAmount,
		&categoryID,
		&b.StartDate,
		&b.EndDate,
		&b.CreatedAt,
		&b.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.CategoryID = categoryID.String
	return &b, nil
}

// SaveBudget inserts a new budget.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `INSERT INTO budgets (` + budgetColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := r.pool.Exec(ctx, query,
		budget.BudgetID,
		budget.Period,
		budget.TotalAmount,
		nullable(budget.CategoryID),
		budget.StartDate,
		budget.EndDate,
		budget.CreatedAt,
		budget.LastUpdatedAt,
	)
	return translateError(err, fmt.Sprintf("failed to save budget %s", budget.BudgetID))
}

// FindBudgetByID retrieves a budget by its ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`

	b, err := scanBudget(r.pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}
	return b, nil
}

// ListBudgets retrieves a paginated list of budgets.
func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets ORDER BY start_date DESC, budget_id LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, *b)
	}
	return budgets, rows.Err()
}

// UpdateBudget updates a budget.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		UPDATE budgets
		SET period = $2, total_amount = $3, category_id = $4, start_date = $5, end_date = $6, last_updated_at = $7
		WHERE budget_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		budget.BudgetID,
		budget.Period,
		budget.TotalAmount,
		nullable(budget.CategoryID),
		budget.StartDate,
		budget.EndDate,
		budget.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", budget.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCategoryRepository persists categories in PostgreSQL.
type PgxCategoryRepository struct {
	baseRepository
}

// NewCategoryRepository creates a new repository for category data.
func NewCategoryRepository(pool *pgxpool.Pool) *PgxCategoryRepository {
	return &PgxCategoryRepository{baseRepository{pool: pool}}
}

var _ portsrepo.CategoryRepository = (*PgxCategoryRepository)(nil)

const categoryColumns = `category_id, name, icon, type, created_at, last_updated_at`

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var cat domain.Category
	err := row.Scan(
		&cat.CategoryID,
		&cat.Name,
		&cat.Icon,
		&cat.Type,
		&cat.CreatedAt,
		&cat.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	query := `INSERT INTO categories (` + categoryColumns + `) VALUES ($1, $2, $3, $4, $5, $6);`
	_, err := r.pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.Icon,
		category.Type,
		category.CreatedAt,
		category.LastUpdatedAt,
	)
	return translateError(err, fmt.Sprintf("failed to save category %s", category.CategoryID))
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	cat, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	return cat, nil
}

// ListCategories retrieves categories, optionally filtered by type.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, categoryType domain.TransactionType, limit int, offset int) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	args := []any{}
	if categoryType != "" {
		query += ` WHERE type = $1`
		args = append(args, categoryType)
	}
	query += fmt.Sprintf(` ORDER BY name, category_id LIMIT $%d OFFSET $%d;`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		cat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, *cat)
	}
	return categories, rows.Err()
}

// UpdateCategory updates a category's mutable fields.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	query := `UPDATE categories SET name = $2, icon = $3, last_updated_at = $4 WHERE category_id = $1;`
	tag, err := r.pool.Exec(ctx, query,
		category.CategoryID,
		category.Name,
		category.Icon,
		category.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", category.CategoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category without cascading.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

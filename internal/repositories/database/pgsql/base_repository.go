package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// baseRepository provides shared transaction management over a pgx pool.
type baseRepository struct {
	pool *pgxpool.Pool
}

var _ portsrepo.TransactionManager = (*baseRepository)(nil)

// Begin starts a new database transaction.
func (r *baseRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Commit commits a transaction.
func (r *baseRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	return tx.Commit(ctx)
}

// Rollback aborts a transaction. Safe to call after Commit.
func (r *baseRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	err := tx.Rollback(ctx)
	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return err
	}
	return nil
}

// translateError maps database errors to the application error taxonomy.
func translateError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return fmt.Errorf("%w: %s", apperrors.ErrDuplicate, what)
	}
	return fmt.Errorf("%s: %w", what, err)
}

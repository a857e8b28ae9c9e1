package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxAccountRepository persists accounts in PostgreSQL.
type PgxAccountRepository struct {
	baseRepository
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{baseRepository{pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

const accountColumns = `account_id, name, account_type, balance, currency_code, icon, color_hex, color_hex2, subtitle, created_at, last_updated_at`

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var acc domain.Account
	err := row.Scan(
		&acc.AccountID,
		&acc.Name,
		&acc.AccountType,
		&acc.Balance,
		&acc.CurrencyCode,
		&acc.Icon,
		&acc.ColorHex,
		&acc.ColorHex2,
		&acc.Subtitle,
		&acc.CreatedAt,
		&acc.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.AccountType,
		account.Balance,
		account.CurrencyCode,
		account.Icon,
		account.ColorHex,
		account.ColorHex2,
		account.Subtitle,
		account.CreatedAt,
		account.LastUpdatedAt,
	)
	return translateError(err, fmt.Sprintf("failed to save account %s", account.AccountID))
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`

	acc, err := scanAccount(r.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts[acc.AccountID] = *acc
	}
	return accounts, rows.Err()
}

// ListAccounts retrieves a paginated list of accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY created_at, account_id LIMIT $1 OFFSET $2;`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	return accounts, rows.Err()
}

// UpdateAccount updates an account's soft characteristics. The balance is
// deliberately excluded; it only moves through ApplyBalanceChangesInTx.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, icon = $3, color_hex = $4, color_hex2 = $5, subtitle = $6, last_updated_at = $7
		WHERE account_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		account.AccountID,
		account.Name,
		account.Icon,
		account.ColorHex,
		account.ColorHex2,
		account.Subtitle,
		account.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteAccount removes an account. Referencing transactions keep their
// dangling account_id.
func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM accounts WHERE account_id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountsByIDsForUpdate selects accounts and locks their rows for
// update within the given transaction. IDs are sorted by the query so two
// concurrent mutations lock in the same order and cannot deadlock.
func (r *PgxAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account)
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan locked account row: %w", err)
		}
		accounts[acc.AccountID] = *acc
	}
	return accounts, rows.Err()
}

// ApplyBalanceChangesInTx adds each delta to the matching account's balance
// within the given transaction.
func (r *PgxAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, now time.Time) error {
	query := `UPDATE accounts SET balance = balance + $2, last_updated_at = $3 WHERE account_id = $1;`

	for accountID, delta := range changes {
		if delta.IsZero() {
			continue
		}
		tag, err := tx.Exec(ctx, query, accountID, delta, now)
		if err != nil {
			return fmt.Errorf("failed to apply balance change to account %s: %w", accountID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
	}
	return nil
}

package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxTransactionRepository persists transactions in PostgreSQL. Mutations
// that carry balance changes run in a single database transaction: the
// affected account rows are locked, the record is written, and the deltas
// applied; any failure rolls the whole mutation back.
type PgxTransactionRepository struct {
	baseRepository
	accountRepo *PgxAccountRepository
}

// NewTransactionRepository creates a new repository for transaction data.
func NewTransactionRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		baseRepository: baseRepository{pool: pool},
		accountRepo:    accountRepo,
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, account_id, category_id, amount, type, date, note, currency_code, user_id, sync_status, remote_version, created_at, last_updated_at`

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var txn domain.Transaction
	var accountID, categoryID, userID, remoteVersion sql.NullString
	err := row.Scan(
		&txn.TransactionID,
		&accountID,
		&categoryID,
		&txn.Amount,
		&txn.Type,
		&txn.Date,
		&txn.Note,
		&txn.CurrencyCode,
		&userID,
		&txn.SyncStatus,
		&remoteVersion,
		&txn.CreatedAt,
		&txn.LastUpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	txn.AccountID = accountID.String
	txn.CategoryID = categoryID.String
	txn.UserID = userID.String
	txn.RemoteVersion = remoteVersion.String
	return &txn, nil
}

// withBalances runs fn inside a database transaction after locking the
// accounts named in changes, then applies the balance deltas.
func (r *PgxTransactionRepository) withBalances(ctx context.Context, changes map[string]decimal.Decimal, now time.Time, fn func(tx pgx.Tx) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck // no-op after commit

	accountIDs := make([]string, 0, len(changes))
	for id := range changes {
		accountIDs = append(accountIDs, id)
	}
	if len(accountIDs) > 0 {
		locked, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs)
		if err != nil {
			return err
		}
		for _, id := range accountIDs {
			if _, ok := locked[id]; !ok {
				return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, id)
			}
		}
	}

	if err := fn(tx); err != nil {
		return err
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, changes, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveTransaction persists a new transaction and applies its balance effect
// atomically.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	return r.withBalances(ctx, balanceChanges, txn.LastUpdatedAt, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, query,
			txn.TransactionID,
			nullable(txn.AccountID),
			nullable(txn.CategoryID),
			txn.Amount,
			txn.Type,
			txn.Date,
			txn.Note,
			txn.CurrencyCode,
			nullable(txn.UserID),
			txn.SyncStatus,
			nullable(txn.RemoteVersion),
			txn.CreatedAt,
			txn.LastUpdatedAt,
		)
		return translateError(err, fmt.Sprintf("failed to save transaction %s", txn.TransactionID))
	})
}

// UpdateTransaction rewrites a transaction and applies the net balance
// deltas atomically.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	query := `
		UPDATE transactions
		SET account_id = $2, category_id = $3, amount = $4, type = $5, date = $6,
		    note = $7, currency_code = $8, sync_status = $9, remote_version = $10, last_updated_at = $11
		WHERE transaction_id = $1;
	`
	return r.withBalances(ctx, balanceChanges, txn.LastUpdatedAt, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, query,
			txn.TransactionID,
			nullable(txn.AccountID),
			nullable(txn.CategoryID),
			txn.Amount,
			txn.Type,
			txn.Date,
			txn.Note,
			txn.CurrencyCode,
			txn.SyncStatus,
			nullable(txn.RemoteVersion),
			txn.LastUpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to update transaction %s: %w", txn.TransactionID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// DeleteTransaction removes a transaction after reversing its balance
// effect, atomically.
func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	return r.withBalances(ctx, balanceChanges, time.Now().UTC(), func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1;`, transactionID)
		if err != nil {
			return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// FindTransactionByID retrieves a transaction by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	txn, err := scanTransaction(r.pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return txn, nil
}

// ListTransactions retrieves transactions matching the filter, newest date
// first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	var conditions []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Type != "" {
		conditions = append(conditions, "type = "+arg(filter.Type))
	}
	if filter.AccountID != "" {
		conditions = append(conditions, "account_id = "+arg(filter.AccountID))
	}
	if filter.CategoryID != "" {
		conditions = append(conditions, "category_id = "+arg(filter.CategoryID))
	}
	if filter.From != nil {
		conditions = append(conditions, "date >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conditions = append(conditions, "date <= "+arg(*filter.To))
	}
	if len(filter.SyncStatuses) > 0 {
		statuses := make([]string, len(filter.SyncStatuses))
		for i, s := range filter.SyncStatuses {
			statuses[i] = string(s)
		}
		conditions = append(conditions, "sync_status = ANY("+arg(statuses)+")")
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date DESC, transaction_id"
	if filter.Limit > 0 {
		query += " LIMIT " + arg(filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET " + arg(filter.Offset)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, *txn)
	}
	return txns, rows.Err()
}

// MarkSyncStatus moves a transaction between sync statuses, conditionally
// on the expected current status.
func (r *PgxTransactionRepository) MarkSyncStatus(ctx context.Context, transactionID string, expected, next domain.SyncStatus, now time.Time) error {
	query := `
		UPDATE transactions
		SET sync_status = $3, last_updated_at = $4
		WHERE transaction_id = $1 AND sync_status = $2;
	`
	tag, err := r.pool.Exec(ctx, query, transactionID, expected, next, now)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s %s: %w", transactionID, next, err)
	}
	if tag.RowsAffected() == 0 {
		return r.syncStatusMiss(ctx, transactionID, expected)
	}
	return nil
}

// MarkSynced records a successful upload acknowledgment for a pending
// transaction and clears any retained conflict snapshot.
func (r *PgxTransactionRepository) MarkSynced(ctx context.Context, transactionID string, remoteVersion string, now time.Time) error {
	query := `
		UPDATE transactions
		SET sync_status = $2, remote_version = $3, remote_payload = NULL, last_updated_at = $4
		WHERE transaction_id = $1 AND sync_status = $5;
	`
	tag, err := r.pool.Exec(ctx, query, transactionID, domain.SyncSynced, remoteVersion, now, domain.SyncPending)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s synced: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.syncStatusMiss(ctx, transactionID, domain.SyncPending)
	}
	return nil
}

// MarkConflict flags a transaction as conflicted, retaining the remote
// version and snapshot for resolution. Valid from LOCAL, PENDING or an
// already conflicted record (refreshing the snapshot).
func (r *PgxTransactionRepository) MarkConflict(ctx context.Context, transactionID string, remoteVersion string, remotePayload []byte, now time.Time) error {
	query := `
		UPDATE transactions
		SET sync_status = $2, remote_version = $3, remote_payload = $4, last_updated_at = $5
		WHERE transaction_id = $1 AND sync_status = ANY($6);
	`
	from := []string{string(domain.SyncLocal), string(domain.SyncPending), string(domain.SyncConflict)}
	tag, err := r.pool.Exec(ctx, query, transactionID, domain.SyncConflict, remoteVersion, remotePayload, now, from)
	if err != nil {
		return fmt.Errorf("failed to mark transaction %s conflicted: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.syncStatusMiss(ctx, transactionID, domain.SyncPending)
	}
	return nil
}

// GetRemoteSnapshot returns the stored remote version and snapshot for a
// conflicted transaction.
func (r *PgxTransactionRepository) GetRemoteSnapshot(ctx context.Context, transactionID string) (string, []byte, error) {
	query := `SELECT remote_version, remote_payload FROM transactions WHERE transaction_id = $1;`

	var remoteVersion sql.NullString
	var payload []byte
	err := r.pool.QueryRow(ctx, query, transactionID).Scan(&remoteVersion, &payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil, apperrors.ErrNotFound
		}
		return "", nil, fmt.Errorf("failed to load remote snapshot for %s: %w", transactionID, err)
	}
	if payload == nil {
		return "", nil, fmt.Errorf("%w: no remote snapshot retained for %s", apperrors.ErrNotFound, transactionID)
	}
	return remoteVersion.String, payload, nil
}

// syncStatusMiss distinguishes an unknown ID from a lost status race.
func (r *PgxTransactionRepository) syncStatusMiss(ctx context.Context, transactionID string, expected domain.SyncStatus) error {
	var current domain.SyncStatus
	err := r.pool.QueryRow(ctx, `SELECT sync_status FROM transactions WHERE transaction_id = $1;`, transactionID).Scan(&current)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to read sync status of %s: %w", transactionID, err)
	}
	return fmt.Errorf("%w: transaction %s is %s, expected %s", apperrors.ErrConflict, transactionID, current, expected)
}

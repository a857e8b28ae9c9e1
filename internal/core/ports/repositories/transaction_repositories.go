package repositories

import (
	"context"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows ListTransactions results. Zero-valued fields
// are ignored.
type TransactionFilter struct {
	Type         domain.TransactionType
	AccountID    string
	CategoryID   string
	From         *time.Time
	To           *time.Time
	SyncStatuses []domain.SyncStatus
	Limit        int
	Offset       int
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves transactions matching the filter, newest
	// date first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction data.
// Every method that takes balanceChanges applies the per-account deltas and
// the record write atomically in a single database transaction with the
// affected account rows locked; on any failure nothing is applied.
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and applies its balance
	// effect.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransaction rewrites an existing transaction and applies the
	// net balance deltas of reversing its prior effect and applying the
	// new one.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// DeleteTransaction removes a transaction after reversing its balance
	// effect.
	DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error
}

// TransactionSyncSupport defines the sync-lifecycle operations. Status
// moves are conditional on the expected current status so concurrent
// uploader and UI mutations cannot produce a half-applied transition.
type TransactionSyncSupport interface {
	// MarkSyncStatus moves a transaction from the expected status to next.
	// Returns apperrors.ErrConflict when the row is no longer in the
	// expected status, apperrors.ErrNotFound when the ID is unknown.
	MarkSyncStatus(ctx context.Context, transactionID string, expected, next domain.SyncStatus, now time.Time) error

	// MarkSynced records a successful upload acknowledgment for a pending
	// transaction, storing the remote version.
	MarkSynced(ctx context.Context, transactionID string, remoteVersion string, now time.Time) error

	// MarkConflict flags a transaction with unsynced local changes whose
	// remote counterpart diverged, storing the remote version and the raw
	// remote snapshot for later resolution.
	MarkConflict(ctx context.Context, transactionID string, remoteVersion string, remotePayload []byte, now time.Time) error

	// GetRemoteSnapshot returns the stored remote version and snapshot for
	// a conflicted transaction.
	GetRemoteSnapshot(ctx context.Context, transactionID string) (string, []byte, error)
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	TransactionSyncSupport
}

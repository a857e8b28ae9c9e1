package repositories

import (
	"context"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing
	// IDs are simply absent from the result; they are not an error.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's soft characteristics.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account. Transactions referencing it keep
	// their now-dangling reference; lookups resolve it as absent.
	DeleteAccount(ctx context.Context, accountID string) error
}

// AccountBalanceSupport defines the balance-maintenance operations used
// inside ledger mutations.
type AccountBalanceSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks their rows for
	// update within the given transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx adds each delta to the matching account's
	// balance within the given transaction.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
}

package services_test

import (
	"context"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockAccountRepository is a mock type for the AccountRepositoryFacade
// interface.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	args := m.Called(ctx, accountID)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]decimal.Decimal, now time.Time) error {
	args := m.Called(ctx, tx, changes, now)
	return args.Error(0)
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

// MockTransactionRepository is a mock type for the
// TransactionRepositoryFacade interface.
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, txn, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, transactionID string, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, transactionID, balanceChanges)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkSyncStatus(ctx context.Context, transactionID string, expected, next domain.SyncStatus, now time.Time) error {
	args := m.Called(ctx, transactionID, expected, next, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkSynced(ctx context.Context, transactionID string, remoteVersion string, now time.Time) error {
	args := m.Called(ctx, transactionID, remoteVersion, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) MarkConflict(ctx context.Context, transactionID string, remoteVersion string, remotePayload []byte, now time.Time) error {
	args := m.Called(ctx, transactionID, remoteVersion, remotePayload, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) GetRemoteSnapshot(ctx context.Context, transactionID string) (string, []byte, error) {
	args := m.Called(ctx, transactionID)
	var payload []byte
	if args.Get(1) != nil {
		payload = args.Get(1).([]byte)
	}
	return args.String(0), payload, args.Error(2)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

// MockBudgetRepository is a mock type for the BudgetRepository interface.
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, limit int, offset int) ([]domain.Budget, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	args := m.Called(ctx, budgetID)
	return args.Error(0)
}

var _ portsrepo.BudgetRepository = (*MockBudgetRepository)(nil)

// MockSettingsRepository is a mock type for the SettingsRepository interface.
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) GetSettings(ctx context.Context) (*domain.UserSettings, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserSettings), args.Error(1)
}

func (m *MockSettingsRepository) UpdateSettings(ctx context.Context, settings domain.UserSettings) error {
	args := m.Called(ctx, settings)
	return args.Error(0)
}

var _ portsrepo.SettingsRepository = (*MockSettingsRepository)(nil)

// MockSyncTransport is a mock type for the SyncTransport interface.
type MockSyncTransport struct {
	mock.Mock
}

func (m *MockSyncTransport) Upload(ctx context.Context, txn domain.Transaction) (*portssvc.UploadOutcome, error) {
	args := m.Called(ctx, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.UploadOutcome), args.Error(1)
}

var _ portssvc.SyncTransport = (*MockSyncTransport)(nil)

// changesEq matches a balance-changes map by numeric value per account.
func changesEq(want map[string]string) interface{} {
	return mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		if len(changes) != len(want) {
			return false
		}
		for accountID, expected := range want {
			got, ok := changes[accountID]
			if !ok || !got.Equal(decimal.RequireFromString(expected)) {
				return false
			}
		}
		return true
	})
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/core/services"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo     *MockTransactionRepository
	mockAccountRepo *MockAccountRepository
	service         portssvc.TransactionSvcFacade
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewTransactionServiceImpl(suite.mockTxnRepo, suite.mockAccountRepo)
}

func (suite *TransactionServiceTestSuite) account(id string) *domain.Account {
	return &domain.Account{
		AccountID:    id,
		Name:         "Wallet",
		AccountType:  domain.AccountCash,
		Balance:      decimal.Zero,
		CurrencyCode: "EUR",
	}
}

func (suite *TransactionServiceTestSuite) existingExpense(accountID string) *domain.Transaction {
	return &domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		Amount:        decimal.RequireFromString("100"),
		Type:          domain.Expense,
		Date:          time.Now().UTC(),
		CurrencyCode:  "EUR",
		SyncStatus:    domain.SyncSynced,
		RemoteVersion: "v1",
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseDebitsAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(suite.account(accountID), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx,
		mock.AnythingOfType("domain.Transaction"),
		changesEq(map[string]string{accountID: "-100"}),
	).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:       decimal.RequireFromString("100"),
		Type:         domain.Expense,
		AccountID:    &accountID,
		Date:         time.Now().UTC(),
		CurrencyCode: "EUR",
	}, "owner")

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.SyncLocal, txn.SyncStatus)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeCreditsAccount() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(suite.account(accountID), nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx,
		mock.AnythingOfType("domain.Transaction"),
		changesEq(map[string]string{accountID: "250.50"}),
	).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:       decimal.RequireFromString("250.50"),
		Type:         domain.Income,
		AccountID:    &accountID,
		Date:         time.Now().UTC(),
		CurrencyCode: "EUR",
	}, "owner")

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NoAccountHasNoBalanceEffect() {
	ctx := context.Background()

	suite.mockTxnRepo.On("SaveTransaction", ctx,
		mock.AnythingOfType("domain.Transaction"),
		changesEq(map[string]string{}),
	).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:       decimal.RequireFromString("10"),
		Type:         domain.Expense,
		Date:         time.Now().UTC(),
		CurrencyCode: "EUR",
	}, "owner")

	suite.Require().NoError(err)
	suite.Empty(txn.AccountID)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NegativeAmountRejected() {
	ctx := context.Background()

	_, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:       decimal.RequireFromString("-5"),
		Type:         domain.Expense,
		Date:         time.Now().UTC(),
		CurrencyCode: "EUR",
	}, "owner")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownAccountRejected() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.CreateTransaction(ctx, dto.CreateTransactionRequest{
		Amount:       decimal.RequireFromString("10"),
		Type:         domain.Expense,
		AccountID:    &accountID,
		Date:         time.Now().UTC(),
		CurrencyCode: "EUR",
	}, "owner")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// Changing a 100 expense to 40 must net out to a +60 correction on the
// account, applied in one repository call.
func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountChangeNetsDeltas() {
	ctx := context.Background()
	accountID := uuid.NewString()
	prior := suite.existingExpense(accountID)
	newAmount := decimal.RequireFromString("40")

	suite.mockTxnRepo.On("FindTransactionByID", ctx, prior.TransactionID).Return(prior, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(suite.account(accountID), nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Amount.Equal(newAmount) && txn.SyncStatus == domain.SyncPending
		}),
		changesEq(map[string]string{accountID: "60"}),
	).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, prior.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	// A local edit of a SYNCED record re-opens the sync cycle.
	suite.Equal(domain.SyncPending, updated.SyncStatus)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// Reassigning the account moves the full effect: the old account gets the
// reversal, the new one the application.
func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AccountReassignmentMovesEffect() {
	ctx := context.Background()
	oldAccountID := uuid.NewString()
	newAccountID := uuid.NewString()
	prior := suite.existingExpense(oldAccountID)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, prior.TransactionID).Return(prior, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, newAccountID).Return(suite.account(newAccountID), nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, oldAccountID).Return(suite.account(oldAccountID), nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx,
		mock.AnythingOfType("domain.Transaction"),
		changesEq(map[string]string{oldAccountID: "100", newAccountID: "-100"}),
	).Return(nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, prior.TransactionID, dto.UpdateTransactionRequest{
		AccountID: &newAccountID,
	})

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NoFieldsIsNoOp() {
	ctx := context.Background()
	prior := suite.existingExpense(uuid.NewString())

	suite.mockTxnRepo.On("FindTransactionByID", ctx, prior.TransactionID).Return(prior, nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, prior.TransactionID, dto.UpdateTransactionRequest{})

	suite.Require().NoError(err)
	suite.Equal(prior.SyncStatus, updated.SyncStatus)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

// Deleting a 100 expense restores the 100 to the account.
func (suite *TransactionServiceTestSuite) TestDeleteTransaction_ReversesEffect() {
	ctx := context.Background()
	accountID := uuid.NewString()
	prior := suite.existingExpense(accountID)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, prior.TransactionID).Return(prior, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(suite.account(accountID), nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, prior.TransactionID,
		changesEq(map[string]string{accountID: "100"}),
	).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, prior.TransactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// A transaction whose account was deleted stays mutable: the delta for the
// absent account is skipped instead of failing the update.
func (suite *TransactionServiceTestSuite) TestUpdateTransaction_DanglingAccountSkipsBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	prior := suite.existingExpense(accountID)
	newAmount := decimal.RequireFromString("40")

	suite.mockTxnRepo.On("FindTransactionByID", ctx, prior.TransactionID).Return(prior, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx,
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Amount.Equal(newAmount)
		}),
		changesEq(map[string]string{}),
	).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, prior.TransactionID, dto.UpdateTransactionRequest{
		Amount: &newAmount,
	})

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_DanglingAccountSkipsBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	prior := suite.existingExpense(accountID)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, prior.TransactionID).Return(prior, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, prior.TransactionID,
		changesEq(map[string]string{}),
	).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, prior.TransactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_NotFound() {
	ctx := context.Background()
	transactionID := uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, transactionID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, transactionID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "DeleteTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_NilResultBecomesEmptySlice() {
	ctx := context.Background()

	suite.mockTxnRepo.On("ListTransactions", ctx, mock.AnythingOfType("repositories.TransactionFilter")).Return([]domain.Transaction(nil), nil).Once()

	txns, err := suite.service.ListTransactions(ctx, dto.ListTransactionsParams{Limit: 10})

	suite.Require().NoError(err)
	suite.NotNil(txns)
	suite.Empty(txns)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

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

type AccountServiceTestSuite struct {
	suite.Suite
	mockRepo *MockAccountRepository
	service  portssvc.AccountSvcFacade
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockAccountRepository)
	suite.service = services.NewAccountServiceImpl(suite.mockRepo)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Name:         "Main Wallet",
		AccountType:  domain.AccountCash,
		CurrencyCode: "EUR",
		Icon:         "wallet",
		ColorHex:     "#4CAF50",
	}

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(req.Name, account.Name)
	suite.Equal(req.AccountType, account.AccountType)
	suite.True(account.Balance.IsZero())
	suite.WithinDuration(time.Now(), account.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_WithInitialBalance() {
	ctx := context.Background()
	initial := decimal.RequireFromString("1500.25")

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Balance.Equal(initial)
	})).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:           "Savings",
		AccountType:    domain.AccountBankCard,
		CurrencyCode:   "EUR",
		InitialBalance: &initial,
	})

	suite.Require().NoError(err)
	suite.True(account.Balance.Equal(initial))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccountFromPreset_AppliesTemplate() {
	ctx := context.Background()

	suite.mockRepo.On("SaveAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.AccountType == domain.AccountCreditCard && acc.Icon == "card"
	})).Return(nil).Once()

	account, err := suite.service.CreateAccountFromPreset(ctx, "credit_card", dto.CreateAccountFromPresetRequest{
		CurrencyCode: "EUR",
	})

	suite.Require().NoError(err)
	suite.Equal("Credit Card", account.Name)
	suite.Equal(domain.AccountCreditCard, account.AccountType)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccountFromPreset_NameOverride() {
	ctx := context.Background()
	name := "Visa Gold"

	suite.mockRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccountFromPreset(ctx, "credit_card", dto.CreateAccountFromPresetRequest{
		Name:         &name,
		CurrencyCode: "EUR",
	})

	suite.Require().NoError(err)
	suite.Equal(name, account.Name)
}

func (suite *AccountServiceTestSuite) TestCreateAccountFromPreset_UnknownKeyRejected() {
	ctx := context.Background()

	_, err := suite.service.CreateAccountFromPreset(ctx, "time_machine", dto.CreateAccountFromPresetRequest{
		CurrencyCode: "EUR",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialUpdate() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{
		AccountID:    accountID,
		Name:         "Old Name",
		AccountType:  domain.AccountCash,
		CurrencyCode: "EUR",
		Icon:         "wallet",
	}
	newName := "New Name"

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(acc domain.Account) bool {
		return acc.Name == newName && acc.Icon == "wallet"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{Name: &newName})

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoFieldsIsNoOp() {
	ctx := context.Background()
	accountID := uuid.NewString()
	existing := &domain.Account{AccountID: accountID, Name: "Unchanged"}

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(existing, nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, accountID, dto.UpdateAccountRequest{})

	suite.Require().NoError(err)
	suite.Equal("Unchanged", updated.Name)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	err := suite.service.DeleteAccount(ctx, accountID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestListAccounts_NilResultBecomesEmptySlice() {
	ctx := context.Background()

	suite.mockRepo.On("ListAccounts", ctx, 50, 0).Return([]domain.Account(nil), nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, 50, 0)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func TestAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

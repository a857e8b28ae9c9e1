package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// accountServiceImpl implements the AccountSvcFacade interface.
type accountServiceImpl struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountServiceImpl creates a new account service.
func NewAccountServiceImpl(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountServiceImpl{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountServiceImpl)(nil)

func (s *accountServiceImpl) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	now := time.Now().UTC()

	balance := decimal.Zero
	if req.InitialBalance != nil {
		balance = *req.InitialBalance
	}

	account := domain.Account{
		AccountID:    uuid.NewString(),
		Name:         req.Name,
		AccountType:  req.AccountType,
		Balance:      balance,
		CurrencyCode: req.CurrencyCode,
		Icon:         req.Icon,
		ColorHex:     req.ColorHex,
		ColorHex2:    req.ColorHex2,
		Subtitle:     req.Subtitle,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("account_type", string(account.AccountType)))
	return &account, nil
}

func (s *accountServiceImpl) CreateAccountFromPreset(ctx context.Context, presetKey string, req dto.CreateAccountFromPresetRequest) (*domain.Account, error) {
	preset, ok := domain.AccountPresets[presetKey]
	if !ok {
		return nil, fmt.Errorf("%w: unknown account preset %q", apperrors.ErrValidation, presetKey)
	}

	name := preset.Name
	if req.Name != nil && *req.Name != "" {
		name = *req.Name
	}

	return s.CreateAccount(ctx, dto.CreateAccountRequest{
		Name:         name,
		AccountType:  preset.AccountType,
		CurrencyCode: req.CurrencyCode,
		Icon:         preset.Icon,
		ColorHex:     preset.ColorHex,
		ColorHex2:    preset.ColorHex2,
	})
}

func (s *accountServiceImpl) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountServiceImpl) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Icon != nil {
		account.Icon = *req.Icon
		updated = true
	}
	if req.ColorHex != nil {
		account.ColorHex = *req.ColorHex
		updated = true
	}
	if req.ColorHex2 != nil {
		account.ColorHex2 = *req.ColorHex2
		updated = true
	}
	if req.Subtitle != nil {
		account.Subtitle = *req.Subtitle
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes the account record. Transactions referencing it are
// left in place with a dangling reference; the caller decides the deletion
// policy (the store never cascades).
func (s *accountServiceImpl) DeleteAccount(ctx context.Context, accountID string) error {
	if _, err := s.GetAccountByID(ctx, accountID); err != nil {
		return err
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}

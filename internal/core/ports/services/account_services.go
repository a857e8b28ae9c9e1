package services

import (
	"context"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
)

// AccountSvcFacade defines the account operations of the entity store.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error)
	CreateAccountFromPreset(ctx context.Context, presetKey string, req dto.CreateAccountFromPresetRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
}

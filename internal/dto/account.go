package dto

import (
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CASH BANK_CARD CREDIT_CARD DIGITAL INVESTMENT OTHER"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	Icon           string             `json:"icon"`
	ColorHex       string             `json:"colorHex" binding:"omitempty,hexcolor"`
	ColorHex2      string             `json:"colorHex2" binding:"omitempty,hexcolor"`
	Subtitle       string             `json:"subtitle"`
	InitialBalance *decimal.Decimal   `json:"initialBalance"` // Optional opening balance
}

// CreateAccountFromPresetRequest creates an account from a canned template,
// optionally overriding the display name.
type CreateAccountFromPresetRequest struct {
	Name         *string `json:"name"`
	CurrencyCode string  `json:"currencyCode" binding:"required,len=3"`
}

// UpdateAccountRequest defines the soft characteristics that may change
// after creation. Pointers distinguish "unset" from zero values; the balance
// is never updatable through this path.
type UpdateAccountRequest struct {
	Name      *string `json:"name"`
	Icon      *string `json:"icon"`
	ColorHex  *string `json:"colorHex" binding:"omitempty,hexcolor"`
	ColorHex2 *string `json:"colorHex2" binding:"omitempty,hexcolor"`
	Subtitle  *string `json:"subtitle"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID     string             `json:"accountID"`
	Name          string             `json:"name"`
	AccountType   domain.AccountType `json:"accountType"`
	Balance       decimal.Decimal    `json:"balance"`
	CurrencyCode  string             `json:"currencyCode"`
	Icon          string             `json:"icon"`
	ColorHex      string             `json:"colorHex"`
	ColorHex2     string             `json:"colorHex2"`
	Subtitle      string             `json:"subtitle,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	LastUpdatedAt time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse converts a domain.Account to its response DTO.
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:     acc.AccountID,
		Name:          acc.Name,
		AccountType:   acc.AccountType,
		Balance:       acc.Balance,
		CurrencyCode:  acc.CurrencyCode,
		Icon:          acc.Icon,
		ColorHex:      acc.ColorHex,
		ColorHex2:     acc.ColorHex2,
		Subtitle:      acc.Subtitle,
		CreatedAt:     acc.CreatedAt,
		LastUpdatedAt: acc.LastUpdatedAt,
	}
}

// ToListAccountResponse converts a slice of accounts to response DTOs.
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

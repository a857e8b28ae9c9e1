package dto

import (
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount is a non-negative magnitude; the sign of its balance effect comes
// from Type. AccountID and CategoryID are optional.
type CreateTransactionRequest struct {
	Amount       decimal.Decimal        `json:"amount" binding:"required"`
	Type         domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	AccountID    *string                `json:"accountID"`
	CategoryID   *string                `json:"categoryID"`
	Date         time.Time              `json:"date" binding:"required"`
	Note         string                 `json:"note"`
	CurrencyCode string                 `json:"currencyCode" binding:"required,len=3"`
}

// UpdateTransactionRequest defines the mutable fields of a transaction.
// Pointers distinguish "unset" from zero values; a pointer to an empty
// string clears an optional reference.
type UpdateTransactionRequest struct {
	Amount     *decimal.Decimal        `json:"amount"`
	Type       *domain.TransactionType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	AccountID  *string                 `json:"accountID"`
	CategoryID *string                 `json:"categoryID"`
	Date       *time.Time              `json:"date"`
	Note       *string                 `json:"note"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	AccountID     string                 `json:"accountID,omitempty"`
	CategoryID    string                 `json:"categoryID,omitempty"`
	Amount        decimal.Decimal        `json:"amount"`
	Type          domain.TransactionType `json:"type"`
	Date          time.Time              `json:"date"`
	Note          string                 `json:"note"`
	CurrencyCode  string                 `json:"currencyCode"`
	SyncStatus    domain.SyncStatus      `json:"syncStatus"`
	RemoteVersion string                 `json:"remoteVersion,omitempty"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		AccountID:     txn.AccountID,
		CategoryID:    txn.CategoryID,
		Amount:        txn.Amount,
		Type:          txn.Type,
		Date:          txn.Date,
		Note:          txn.Note,
		CurrencyCode:  txn.CurrencyCode,
		SyncStatus:    txn.SyncStatus,
		RemoteVersion: txn.RemoteVersion,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}

// ToListTransactionResponse converts a slice of transactions to DTOs.
func ToListTransactionResponse(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Type       string     `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	AccountID  string     `form:"accountID"`
	CategoryID string     `form:"categoryID"`
	From       *time.Time `form:"from" time_format:"2006-01-02"`
	To         *time.Time `form:"to" time_format:"2006-01-02"`
	Limit      int        `form:"limit,default=50"`
	Offset     int        `form:"offset,default=0"`
}

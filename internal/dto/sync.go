package dto

import (
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RemoteTransaction is the shape of a transaction arriving on the remote
// change feed or stored as a conflict snapshot.
type RemoteTransaction struct {
	TransactionID string                 `json:"transactionID" binding:"required"`
	AccountID     string                 `json:"accountID"`
	CategoryID    string                 `json:"categoryID"`
	Amount        decimal.Decimal        `json:"amount" binding:"required"`
	Type          domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Date          time.Time              `json:"date" binding:"required"`
	Note          string                 `json:"note"`
	CurrencyCode  string                 `json:"currencyCode" binding:"required,len=3"`
	RemoteVersion string                 `json:"remoteVersion" binding:"required"`
}

// ResolveConflictRequest carries the caller's verdict on a conflicted
// transaction.
type ResolveConflictRequest struct {
	Resolution domain.ConflictResolution `json:"resolution" binding:"required,oneof=LOCAL_WINS REMOTE_WINS"`
}

// SyncStatusResponse reports a transaction's sync lifecycle position.
type SyncStatusResponse struct {
	TransactionID string            `json:"transactionID"`
	SyncStatus    domain.SyncStatus `json:"syncStatus"`
	RemoteVersion string            `json:"remoteVersion,omitempty"`
}

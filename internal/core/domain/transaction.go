package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or removes from
// the referenced account's balance.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction is a single ledger entry. Amount is always a positive
// magnitude; the direction of its effect on the account balance is derived
// from TransactionType. AccountID and CategoryID are optional references:
// an empty value means "no account" / "uncategorized" and is not an error.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`  // Optional FK -> Account
	CategoryID    string          `json:"categoryID"` // Optional FK -> Category
	Amount        decimal.Decimal `json:"amount"`
	Type          TransactionType `json:"type"`
	Date          time.Time       `json:"date"`
	Note          string          `json:"note"`
	CurrencyCode  string          `json:"currencyCode"`
	UserID        string          `json:"userID"` // Optional owning user
	SyncStatus    SyncStatus      `json:"syncStatus"`
	RemoteVersion string          `json:"remoteVersion"` // Set once the remote has acknowledged the record
	AuditFields
}

package domain

import "github.com/shopspring/decimal"

// AccountType classifies where the money in an account lives.
type AccountType string

const (
	AccountCash       AccountType = "CASH"
	AccountBankCard   AccountType = "BANK_CARD"
	AccountCreditCard AccountType = "CREDIT_CARD"
	AccountDigital    AccountType = "DIGITAL"
	AccountInvestment AccountType = "INVESTMENT"
	AccountOther      AccountType = "OTHER"
)

// Account represents a single money holding tracked by the ledger.
// Balance is the authoritative running total of the effects of every
// current transaction referencing the account; it is maintained by the
// transaction service and must never be written directly by callers.
// Negative balances are valid (credit card debt).
type Account struct {
	AccountID    string          `json:"accountID"`
	Name         string          `json:"name"`
	AccountType  AccountType     `json:"accountType"`
	Balance      decimal.Decimal `json:"balance"`
	CurrencyCode string          `json:"currencyCode"`
	Icon         string          `json:"icon"`
	ColorHex     string          `json:"colorHex"`
	ColorHex2    string          `json:"colorHex2"`
	Subtitle     string          `json:"subtitle"` // Optional, empty when unset
	AuditFields
}

// AccountPreset is a canned account template the user can create from.
type AccountPreset struct {
	Name        string
	AccountType AccountType
	Icon        string
	ColorHex    string
	ColorHex2   string
}

// AccountPresets maps preset keys to their templates. Display-name
// localization of these is a presentation concern handled by clients.
var AccountPresets = map[string]AccountPreset{
	"wallet": {
		Name:        "Wallet",
		AccountType: AccountCash,
		Icon:        "wallet",
		ColorHex:    "#4CAF50",
		ColorHex2:   "#2E7D32",
	},
	"debit_card": {
		Name:        "Debit Card",
		AccountType: AccountBankCard,
		Icon:        "card",
		ColorHex:    "#2196F3",
		ColorHex2:   "#1565C0",
	},
	"credit_card": {
		Name:        "Credit Card",
		AccountType: AccountCreditCard,
		Icon:        "card",
		ColorHex:    "#F44336",
		ColorHex2:   "#B71C1C",
	},
	"paypal": {
		Name:        "PayPal",
		AccountType: AccountDigital,
		Icon:        "globe",
		ColorHex:    "#3F51B5",
		ColorHex2:   "#283593",
	},
	"brokerage": {
		Name:        "Brokerage",
		AccountType: AccountInvestment,
		Icon:        "chart",
		ColorHex:    "#9C27B0",
		ColorHex2:   "#6A1B9A",
	},
}

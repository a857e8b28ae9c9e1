package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod names the rolling calendar window a budget covers.
type BudgetPeriod string

const (
	Daily   BudgetPeriod = "DAILY"
	Weekly  BudgetPeriod = "WEEKLY"
	Monthly BudgetPeriod = "MONTHLY"
	Yearly  BudgetPeriod = "YEARLY"
)

// Budget caps spending over an explicit date range. CategoryID is optional:
// when empty the budget covers every expense transaction in range.
// StartDate must not be after EndDate. Uniqueness of active budgets per
// (period, category) is a caller policy; the model does not enforce it.
type Budget struct {
	BudgetID    string          `json:"budgetID"`
	Period      BudgetPeriod    `json:"period"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CategoryID  string          `json:"categoryID"` // Optional FK -> Category
	StartDate   time.Time       `json:"startDate"`
	EndDate     time.Time       `json:"endDate"`
	AuditFields
}

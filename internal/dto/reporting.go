package dto

import (
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PeriodSummaryParams defines query parameters for the period summary.
type PeriodSummaryParams struct {
	Period domain.BudgetPeriod `form:"period" binding:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
}

// PeriodSummaryResponse aggregates ledger activity inside the rolling
// period containing the reference instant.
type PeriodSummaryResponse struct {
	Period           domain.BudgetPeriod `json:"period"`
	TotalIncome      decimal.Decimal     `json:"totalIncome"`
	TotalExpense     decimal.Decimal     `json:"totalExpense"`
	Net              decimal.Decimal     `json:"net"`
	TransactionCount int                 `json:"transactionCount"`
}

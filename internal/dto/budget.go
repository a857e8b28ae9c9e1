package dto

import (
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a budget.
// CategoryID absent means the budget covers all expense spending.
type CreateBudgetRequest struct {
	Period      domain.BudgetPeriod `json:"period" binding:"required,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	TotalAmount decimal.Decimal     `json:"totalAmount" binding:"required"`
	CategoryID  *string             `json:"categoryID"`
	StartDate   time.Time           `json:"startDate" binding:"required"`
	EndDate     time.Time           `json:"endDate" binding:"required"`
}

// UpdateBudgetRequest defines the mutable fields of a budget.
type UpdateBudgetRequest struct {
	Period      *domain.BudgetPeriod `json:"period" binding:"omitempty,oneof=DAILY WEEKLY MONTHLY YEARLY"`
	TotalAmount *decimal.Decimal     `json:"totalAmount"`
	CategoryID  *string              `json:"categoryID"`
	StartDate   *time.Time           `json:"startDate"`
	EndDate     *time.Time           `json:"endDate"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID      string              `json:"budgetID"`
	Period        domain.BudgetPeriod `json:"period"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`
	CategoryID    string              `json:"categoryID,omitempty"`
	StartDate     time.Time           `json:"startDate"`
	EndDate       time.Time           `json:"endDate"`
	CreatedAt     time.Time           `json:"createdAt"`
	LastUpdatedAt time.Time           `json:"lastUpdatedAt"`
}

// ToBudgetResponse converts a domain.Budget to its response DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:      b.BudgetID,
		Period:        b.Period,
		TotalAmount:   b.TotalAmount,
		CategoryID:    b.CategoryID,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

// ToListBudgetResponse converts a slice of budgets to DTOs.
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		res[i] = ToBudgetResponse(&budgets[i])
	}
	return res
}

// ListBudgetsParams defines query parameters for listing budgets.
type ListBudgetsParams struct {
	Limit  int `form:"limit,default=50"`
	Offset int `form:"offset,default=0"`
}

// BudgetEvaluationResponse is the read-side evaluation of a budget over its
// window at a given instant.
type BudgetEvaluationResponse struct {
	BudgetID        string          `json:"budgetID"`
	Spent           decimal.Decimal `json:"spent"`
	Remaining       decimal.Decimal `json:"remaining"`
	PercentUsed     float64         `json:"percentUsed"`
	IsOverThreshold bool            `json:"isOverThreshold"`
	IsExpired       bool            `json:"isExpired"`
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
	"github.com/coinkeep/coinkeep_backend/internal/utils/periods"
	"github.com/shopspring/decimal"
)

// reportingServiceImpl implements read-side aggregations over the ledger.
type reportingServiceImpl struct {
	BaseService
	txnRepo  portsrepo.TransactionReader
	calendar periods.Calendar
}

// NewReportingServiceImpl creates a new reporting service.
func NewReportingServiceImpl(txnRepo portsrepo.TransactionReader, calendar periods.Calendar) portssvc.ReportingSvcFacade {
	return &reportingServiceImpl{
		txnRepo:  txnRepo,
		calendar: calendar,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingServiceImpl)(nil)

// SummarizePeriod totals income and expense for transactions whose date
// falls in the rolling period containing now, per the configured calendar.
func (s *reportingServiceImpl) SummarizePeriod(ctx context.Context, period domain.BudgetPeriod, now time.Time) (*dto.PeriodSummaryResponse, error) {
	txns, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions for period summary")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	income := decimal.Zero
	expense := decimal.Zero
	count := 0
	for _, txn := range txns {
		if !s.calendar.Contains(period, txn.Date, now) {
			continue
		}
		count++
		switch txn.Type {
		case domain.Income:
			income = income.Add(txn.Amount)
		case domain.Expense:
			expense = expense.Add(txn.Amount)
		}
	}

	return &dto.PeriodSummaryResponse{
		Period:           period,
		TotalIncome:      income,
		TotalExpense:     expense,
		Net:              income.Sub(expense),
		TransactionCount: count,
	}, nil
}

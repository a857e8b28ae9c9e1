package services

import (
	"context"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
)

// ReportingSvcFacade provides read-side aggregations over the ledger.
type ReportingSvcFacade interface {
	// SummarizePeriod totals income and expense for transactions whose date
	// falls in the rolling period containing now.
	SummarizePeriod(ctx context.Context, period domain.BudgetPeriod, now time.Time) (*dto.PeriodSummaryResponse, error)
}

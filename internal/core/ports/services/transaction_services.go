package services

import (
	"context"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
)

// TransactionSvcFacade defines the transaction operations of the entity
// store. Mutations keep the referenced account's balance consistent and
// drive the record's sync lifecycle.
type TransactionSvcFacade interface {
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, transactionID string) error
}

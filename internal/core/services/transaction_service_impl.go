package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coinkeep/coinkeep_backend/internal/apperrors"
	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	portsrepo "github.com/coinkeep/coinkeep_backend/internal/core/ports/repositories"
	portssvc "github.com/coinkeep/coinkeep_backend/internal/core/ports/services"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
	"github.com/coinkeep/coinkeep_backend/internal/utils/accounting"
	"github.com/google/uuid"
)

// transactionServiceImpl implements the TransactionSvcFacade interface.
// It is the single writer of transaction state and the owner of balance
// maintenance: every mutation computes the net per-account balance deltas
// and hands them to the repository, which applies record write and balance
// updates in one database transaction.
type transactionServiceImpl struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
}

// NewTransactionServiceImpl creates a new transaction service.
func NewTransactionServiceImpl(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.TransactionSvcFacade {
	return &transactionServiceImpl{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionServiceImpl)(nil)

func (s *transactionServiceImpl) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, userID string) (*domain.Transaction, error) {
	if req.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: transaction amount must not be negative", apperrors.ErrValidation)
	}

	accountID := ""
	if req.AccountID != nil {
		accountID = *req.AccountID
	}
	categoryID := ""
	if req.CategoryID != nil {
		categoryID = *req.CategoryID
	}

	// Referenced account must exist at creation time. Categories are a
	// soft reference and are not checked.
	if accountID != "" {
		if _, err := s.accountRepo.FindAccountByID(ctx, accountID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
			}
			return nil, fmt.Errorf("failed to verify account %s: %w", accountID, err)
		}
	}

	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     accountID,
		CategoryID:    categoryID,
		Amount:        req.Amount,
		Type:          req.Type,
		Date:          req.Date,
		Note:          req.Note,
		CurrencyCode:  req.CurrencyCode,
		UserID:        userID,
		SyncStatus:    domain.SyncLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	changes := accounting.BalanceChanges{}
	if err := changes.Apply(txn.AccountID, txn.Type, txn.Amount); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, changes); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.Type)),
		slog.String("amount", txn.Amount.String()))
	return &txn, nil
}

func (s *transactionServiceImpl) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) ([]domain.Transaction, error) {
	filter := portsrepo.TransactionFilter{
		Type:       domain.TransactionType(params.Type),
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		From:       params.From,
		To:         params.To,
		Limit:      params.Limit,
		Offset:     params.Offset,
	}

	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// UpdateTransaction applies a partial change. When amount, type or account
// change, the prior balance effect is reversed and the new one applied in
// the same database transaction; reassigning the account moves both
// effects. Any local mutation of a SYNCED or CONFLICT record re-opens the
// sync cycle.
func (s *transactionServiceImpl) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	prior, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	next := *prior
	updated := false

	if req.Amount != nil {
		if req.Amount.IsNegative() {
			return nil, fmt.Errorf("%w: transaction amount must not be negative", apperrors.ErrValidation)
		}
		next.Amount = *req.Amount
		updated = true
	}
	if req.Type != nil {
		next.Type = *req.Type
		updated = true
	}
	if req.AccountID != nil {
		if *req.AccountID != "" {
			if _, err := s.accountRepo.FindAccountByID(ctx, *req.AccountID); err != nil {
				if errors.Is(err, apperrors.ErrNotFound) {
					return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, *req.AccountID)
				}
				return nil, fmt.Errorf("failed to verify account %s: %w", *req.AccountID, err)
			}
		}
		next.AccountID = *req.AccountID
		updated = true
	}
	if req.CategoryID != nil {
		next.CategoryID = *req.CategoryID
		updated = true
	}
	if req.Date != nil {
		next.Date = *req.Date
		updated = true
	}
	if req.Note != nil {
		next.Note = *req.Note
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for transaction update", slog.String("transaction_id", transactionID))
		return prior, nil
	}

	nextStatus, err := prior.SyncStatus.Transition(domain.SyncEventLocalEdit)
	if err != nil {
		// LOCAL_EDIT is defined for every status; reaching this means the
		// stored status is corrupt.
		return nil, fmt.Errorf("sync status for transaction %s: %w", transactionID, err)
	}
	next.SyncStatus = nextStatus
	next.LastUpdatedAt = time.Now().UTC()

	// A dangling account reference has no balance to maintain: skip the
	// reversal, and the re-application when the reference is unchanged. A
	// changed reference was verified above.
	changes := accounting.BalanceChanges{}
	priorAccountLive := s.accountExists(ctx, prior.AccountID)
	if priorAccountLive {
		if err := changes.Reverse(prior.AccountID, prior.Type, prior.Amount); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}
	if next.AccountID != prior.AccountID || priorAccountLive {
		if err := changes.Apply(next.AccountID, next.Type, next.Amount); err != nil {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}

	if err := s.txnRepo.UpdateTransaction(ctx, next, changes); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.String("sync_status", string(next.SyncStatus)))
	return &next, nil
}

// DeleteTransaction reverses the transaction's balance effect and removes
// the record, atomically.
func (s *transactionServiceImpl) DeleteTransaction(ctx context.Context, transactionID string) error {
	prior, err := s.GetTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	changes := accounting.BalanceChanges{}
	if s.accountExists(ctx, prior.AccountID) {
		if err := changes.Reverse(prior.AccountID, prior.Type, prior.Amount); err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrValidation, err)
		}
	}

	if err := s.txnRepo.DeleteTransaction(ctx, transactionID, changes); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// accountExists reports whether the referenced account still resolves.
// Deleting an account leaves its transactions with a dangling reference;
// those have no balance to maintain.
func (s *transactionServiceImpl) accountExists(ctx context.Context, accountID string) bool {
	if accountID == "" {
		return false
	}
	_, err := s.accountRepo.FindAccountByID(ctx, accountID)
	return err == nil
}

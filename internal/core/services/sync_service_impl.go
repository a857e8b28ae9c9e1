package services

import (
	"context"
	"encoding/json"
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
	"golang.org/x/sync/errgroup"
)

// syncServiceImpl implements the SyncSvcFacade interface. It drives the
// per-transaction sync lifecycle through the domain transition table and
// persists every move conditionally on the expected current status, so a
// concurrent local edit can never be overwritten by a stale upload result.
type syncServiceImpl struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
	transport   portssvc.SyncTransport
	concurrency int
}

// SyncOption is a functional option for configuring the sync service.
type SyncOption func(*syncServiceImpl)

// WithSyncConcurrency bounds how many uploads run in parallel per pass.
func WithSyncConcurrency(n int) SyncOption {
	return func(s *syncServiceImpl) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewSyncServiceImpl creates a new sync service.
func NewSyncServiceImpl(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader, transport portssvc.SyncTransport, options ...SyncOption) portssvc.SyncSvcFacade {
	svc := &syncServiceImpl{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		transport:   transport,
		concurrency: 4,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.SyncSvcFacade = (*syncServiceImpl)(nil)

func (s *syncServiceImpl) MarkPending(ctx context.Context, transactionID string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	next, err := txn.SyncStatus.Transition(domain.SyncEventQueued)
	if err != nil {
		return err
	}
	if next == txn.SyncStatus {
		return nil // Already queued
	}

	if err := s.txnRepo.MarkSyncStatus(ctx, transactionID, txn.SyncStatus, next, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to mark transaction pending", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogDebug(ctx, "Transaction queued for upload", slog.String("transaction_id", transactionID))
	return nil
}

func (s *syncServiceImpl) MarkSynced(ctx context.Context, transactionID string, remoteVersion string) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	if _, err := txn.SyncStatus.Transition(domain.SyncEventAcked); err != nil {
		return err
	}

	if err := s.txnRepo.MarkSynced(ctx, transactionID, remoteVersion, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to mark transaction synced", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction synced",
		slog.String("transaction_id", transactionID),
		slog.String("remote_version", remoteVersion))
	return nil
}

func (s *syncServiceImpl) MarkConflict(ctx context.Context, transactionID string, remote dto.RemoteTransaction) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}

	if _, err := txn.SyncStatus.Transition(domain.SyncEventDiverged); err != nil {
		return err
	}

	payload, err := json.Marshal(remote)
	if err != nil {
		return fmt.Errorf("failed to encode remote snapshot for %s: %w", transactionID, err)
	}

	if err := s.txnRepo.MarkConflict(ctx, transactionID, remote.RemoteVersion, payload, time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to mark transaction conflicted", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Sync conflict recorded",
		slog.String("transaction_id", transactionID),
		slog.String("remote_version", remote.RemoteVersion))
	return nil
}

// ResolveConflict closes a conflict. LOCAL_WINS re-queues the local copy
// for upload; REMOTE_WINS adopts the stored remote snapshot, routing the
// field change through balance maintenance so the account stays consistent.
func (s *syncServiceImpl) ResolveConflict(ctx context.Context, transactionID string, resolution domain.ConflictResolution) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	switch resolution {
	case domain.ResolveLocalWins:
		next, err := txn.SyncStatus.Transition(domain.SyncEventResolveLocal)
		if err != nil {
			return nil, err
		}
		if err := s.txnRepo.MarkSyncStatus(ctx, transactionID, txn.SyncStatus, next, time.Now().UTC()); err != nil {
			return nil, err
		}
		txn.SyncStatus = next
		s.LogInfo(ctx, "Conflict resolved, local copy wins", slog.String("transaction_id", transactionID))
		return txn, nil

	case domain.ResolveRemoteWins:
		next, err := txn.SyncStatus.Transition(domain.SyncEventResolveRemote)
		if err != nil {
			return nil, err
		}

		remoteVersion, payload, err := s.txnRepo.GetRemoteSnapshot(ctx, transactionID)
		if err != nil {
			return nil, err
		}
		var remote dto.RemoteTransaction
		if err := json.Unmarshal(payload, &remote); err != nil {
			return nil, fmt.Errorf("failed to decode remote snapshot for %s: %w", transactionID, err)
		}

		adopted := *txn
		adopted.AccountID = remote.AccountID
		adopted.CategoryID = remote.CategoryID
		adopted.Amount = remote.Amount
		adopted.Type = remote.Type
		adopted.Date = remote.Date
		adopted.Note = remote.Note
		adopted.CurrencyCode = remote.CurrencyCode
		adopted.SyncStatus = next
		adopted.RemoteVersion = remoteVersion
		adopted.LastUpdatedAt = time.Now().UTC()

		changes := accounting.BalanceChanges{}
		if s.accountExists(ctx, txn.AccountID) {
			if err := changes.Reverse(txn.AccountID, txn.Type, txn.Amount); err != nil {
				return nil, err
			}
		}
		if s.accountExists(ctx, adopted.AccountID) {
			if err := changes.Apply(adopted.AccountID, adopted.Type, adopted.Amount); err != nil {
				return nil, err
			}
		}

		if err := s.txnRepo.UpdateTransaction(ctx, adopted, changes); err != nil {
			s.LogError(ctx, err, "Failed to adopt remote copy", slog.String("transaction_id", transactionID))
			return nil, err
		}

		s.LogInfo(ctx, "Conflict resolved, remote copy adopted",
			slog.String("transaction_id", transactionID),
			slog.String("remote_version", remoteVersion))
		return &adopted, nil

	default:
		return nil, fmt.Errorf("%w: unknown conflict resolution %q", apperrors.ErrValidation, resolution)
	}
}

// ApplyRemoteChange ingests one record from the remote change feed.
func (s *syncServiceImpl) ApplyRemoteChange(ctx context.Context, remote dto.RemoteTransaction) error {
	txn, err := s.txnRepo.FindTransactionByID(ctx, remote.TransactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return s.createFromRemote(ctx, remote)
		}
		return err
	}

	switch txn.SyncStatus {
	case domain.SyncSynced:
		if txn.RemoteVersion == remote.RemoteVersion {
			return nil // Already up to date
		}
		return s.adoptRemote(ctx, txn, remote)
	case domain.SyncLocal, domain.SyncPending, domain.SyncConflict:
		// Unsynced local changes exist; surface (or refresh) the conflict.
		return s.MarkConflict(ctx, remote.TransactionID, remote)
	default:
		return fmt.Errorf("transaction %s has unknown sync status %q", txn.TransactionID, txn.SyncStatus)
	}
}

func (s *syncServiceImpl) createFromRemote(ctx context.Context, remote dto.RemoteTransaction) error {
	now := time.Now().UTC()
	txn := domain.Transaction{
		TransactionID: remote.TransactionID,
		AccountID:     remote.AccountID,
		CategoryID:    remote.CategoryID,
		Amount:        remote.Amount,
		Type:          remote.Type,
		Date:          remote.Date,
		Note:          remote.Note,
		CurrencyCode:  remote.CurrencyCode,
		SyncStatus:    domain.SyncSynced,
		RemoteVersion: remote.RemoteVersion,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	changes := accounting.BalanceChanges{}
	if s.accountExists(ctx, txn.AccountID) {
		if err := changes.Apply(txn.AccountID, txn.Type, txn.Amount); err != nil {
			return err
		}
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, changes); err != nil {
		s.LogError(ctx, err, "Failed to store remote transaction", slog.String("transaction_id", txn.TransactionID))
		return err
	}

	s.LogInfo(ctx, "Remote transaction stored", slog.String("transaction_id", txn.TransactionID))
	return nil
}

func (s *syncServiceImpl) adoptRemote(ctx context.Context, txn *domain.Transaction, remote dto.RemoteTransaction) error {
	adopted := *txn
	adopted.AccountID = remote.AccountID
	adopted.CategoryID = remote.CategoryID
	adopted.Amount = remote.Amount
	adopted.Type = remote.Type
	adopted.Date = remote.Date
	adopted.Note = remote.Note
	adopted.CurrencyCode = remote.CurrencyCode
	adopted.RemoteVersion = remote.RemoteVersion
	adopted.LastUpdatedAt = time.Now().UTC()

	changes := accounting.BalanceChanges{}
	if s.accountExists(ctx, txn.AccountID) {
		if err := changes.Reverse(txn.AccountID, txn.Type, txn.Amount); err != nil {
			return err
		}
	}
	if s.accountExists(ctx, adopted.AccountID) {
		if err := changes.Apply(adopted.AccountID, adopted.Type, adopted.Amount); err != nil {
			return err
		}
	}

	if err := s.txnRepo.UpdateTransaction(ctx, adopted, changes); err != nil {
		s.LogError(ctx, err, "Failed to adopt remote update", slog.String("transaction_id", txn.TransactionID))
		return err
	}
	return nil
}

// accountExists reports whether the referenced account is present locally.
// Dangling references are valid; their balance effect is simply skipped
// because there is no balance to maintain.
func (s *syncServiceImpl) accountExists(ctx context.Context, accountID string) bool {
	if accountID == "" {
		return false
	}
	_, err := s.accountRepo.FindAccountByID(ctx, accountID)
	return err == nil
}

// SyncOnce performs one upload pass over every LOCAL and PENDING
// transaction. Uploads run concurrently, bounded by the configured
// concurrency. A cancelled context aborts the pass; records whose upload
// had not completed keep their current status.
func (s *syncServiceImpl) SyncOnce(ctx context.Context) error {
	txns, err := s.txnRepo.ListTransactions(ctx, portsrepo.TransactionFilter{
		SyncStatuses: []domain.SyncStatus{domain.SyncLocal, domain.SyncPending},
	})
	if err != nil {
		return fmt.Errorf("failed to list unsynced transactions: %w", err)
	}
	if len(txns) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, txn := range txns {
		txn := txn
		g.Go(func() error {
			return s.uploadOne(gctx, txn)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.LogInfo(ctx, "Sync pass completed", slog.Int("uploaded", len(txns)))
	return nil
}

func (s *syncServiceImpl) uploadOne(ctx context.Context, txn domain.Transaction) error {
	// First upload attempt moves LOCAL to PENDING before the network call,
	// so a crash mid-upload leaves the record queued rather than invisible.
	if txn.SyncStatus == domain.SyncLocal {
		if err := s.MarkPending(ctx, txn.TransactionID); err != nil {
			return err
		}
		txn.SyncStatus = domain.SyncPending
	}

	outcome, err := s.transport.Upload(ctx, txn)
	if err != nil {
		// Transport failure or cancellation: no status transition.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		s.LogError(ctx, err, "Upload failed", slog.String("transaction_id", txn.TransactionID))
		return fmt.Errorf("upload of %s: %w", txn.TransactionID, err)
	}

	if outcome.Acked {
		return s.MarkSynced(ctx, txn.TransactionID, outcome.RemoteVersion)
	}
	if outcome.Remote == nil {
		return fmt.Errorf("transport reported divergence for %s without a remote snapshot", txn.TransactionID)
	}
	return s.MarkConflict(ctx, txn.TransactionID, *outcome.Remote)
}

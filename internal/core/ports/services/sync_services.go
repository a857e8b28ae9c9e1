package services

import (
	"context"

	"github.com/coinkeep/coinkeep_backend/internal/core/domain"
	"github.com/coinkeep/coinkeep_backend/internal/dto"
)

// UploadOutcome is the remote's answer to uploading one transaction.
type UploadOutcome struct {
	// Acked is true when the remote accepted the record.
	Acked bool
	// RemoteVersion is the version the remote now holds.
	RemoteVersion string
	// Remote carries the remote's copy when the upload was rejected as
	// divergent; nil on ack.
	Remote *dto.RemoteTransaction
}

// SyncTransport is the external collaborator carrying records to and from
// the remote store. The wire protocol is out of scope; implementations must
// honour context cancellation.
type SyncTransport interface {
	Upload(ctx context.Context, txn domain.Transaction) (*UploadOutcome, error)
}

// SyncSvcFacade manages the per-transaction sync lifecycle.
type SyncSvcFacade interface {
	// MarkPending queues a transaction for upload (LOCAL -> PENDING).
	MarkPending(ctx context.Context, transactionID string) error

	// MarkSynced records a successful upload acknowledgment
	// (PENDING -> SYNCED).
	MarkSynced(ctx context.Context, transactionID string, remoteVersion string) error

	// MarkConflict flags a divergent remote version detected while local
	// changes are unsynced, retaining the remote snapshot for resolution.
	MarkConflict(ctx context.Context, transactionID string, remote dto.RemoteTransaction) error

	// ResolveConflict closes a conflict: LOCAL_WINS re-queues the local
	// copy, REMOTE_WINS adopts the stored remote snapshot (including its
	// balance effect) and marks the record synced.
	ResolveConflict(ctx context.Context, transactionID string, resolution domain.ConflictResolution) (*domain.Transaction, error)

	// ApplyRemoteChange ingests one record from the remote change feed:
	// unknown records are created synced, cleanly synced records adopt the
	// remote fields, records with unsynced local changes go to conflict.
	ApplyRemoteChange(ctx context.Context, remote dto.RemoteTransaction) error

	// SyncOnce performs one upload pass over every LOCAL and PENDING
	// transaction. Cancellation aborts the pass without moving the status
	// of records whose upload had not completed.
	SyncOnce(ctx context.Context) error
}

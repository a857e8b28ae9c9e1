package domain

import (
	"errors"
	"fmt"
)

// SyncStatus tracks whether a transaction's local state has been reconciled
// with the remote store.
type SyncStatus string

const (
	SyncLocal    SyncStatus = "LOCAL"    // Never uploaded
	SyncPending  SyncStatus = "PENDING"  // Queued for upload
	SyncSynced   SyncStatus = "SYNCED"   // Acknowledged by the remote
	SyncConflict SyncStatus = "CONFLICT" // Remote diverged while local changes were unsynced
)

// SyncEvent is something that happens to a record's sync lifecycle.
type SyncEvent string

const (
	// SyncEventLocalEdit fires when the record is mutated locally.
	SyncEventLocalEdit SyncEvent = "LOCAL_EDIT"
	// SyncEventQueued fires when the record is queued for its next upload.
	SyncEventQueued SyncEvent = "QUEUED"
	// SyncEventAcked fires when the remote acknowledges an upload.
	SyncEventAcked SyncEvent = "ACKED"
	// SyncEventDiverged fires when a divergent remote version is detected
	// for a record that still carries unsynced local changes.
	SyncEventDiverged SyncEvent = "DIVERGED"
	// SyncEventResolveLocal resolves a conflict in favour of the local copy.
	SyncEventResolveLocal SyncEvent = "RESOLVE_LOCAL"
	// SyncEventResolveRemote resolves a conflict in favour of the remote copy.
	SyncEventResolveRemote SyncEvent = "RESOLVE_REMOTE"
)

// ErrInvalidSyncTransition is returned when an event is not defined for the
// record's current sync status. Undefined transitions are always rejected,
// never silently ignored.
var ErrInvalidSyncTransition = errors.New("invalid sync status transition")

// Transition returns the status that follows the given event.
//
//	LOCAL    --QUEUED-->          PENDING
//	PENDING  --ACKED-->           SYNCED
//	PENDING  --DIVERGED-->        CONFLICT
//	LOCAL    --DIVERGED-->        CONFLICT
//	SYNCED   --LOCAL_EDIT-->      PENDING
//	CONFLICT --LOCAL_EDIT-->      PENDING
//	CONFLICT --RESOLVE_LOCAL-->   PENDING
//	CONFLICT --RESOLVE_REMOTE-->  SYNCED
//
// LOCAL_EDIT on a LOCAL or PENDING record and QUEUED/DIVERGED on an already
// PENDING/CONFLICT record keep the current status (the cycle is already
// open). Everything else is ErrInvalidSyncTransition.
func (s SyncStatus) Transition(event SyncEvent) (SyncStatus, error) {
	switch event {
	case SyncEventLocalEdit:
		// A local edit always leaves the record needing upload; a record
		// that was never uploaded stays LOCAL until its first queue attempt.
		switch s {
		case SyncLocal, SyncPending:
			return s, nil
		case SyncSynced, SyncConflict:
			return SyncPending, nil
		}
	case SyncEventQueued:
		switch s {
		case SyncLocal:
			return SyncPending, nil
		case SyncPending:
			return SyncPending, nil
		}
	case SyncEventAcked:
		if s == SyncPending {
			return SyncSynced, nil
		}
	case SyncEventDiverged:
		switch s {
		case SyncLocal, SyncPending:
			return SyncConflict, nil
		case SyncConflict:
			return SyncConflict, nil
		}
	case SyncEventResolveLocal:
		if s == SyncConflict {
			return SyncPending, nil
		}
	case SyncEventResolveRemote:
		if s == SyncConflict {
			return SyncSynced, nil
		}
	}
	return s, fmt.Errorf("%w: %s on %s", ErrInvalidSyncTransition, event, s)
}

// ConflictResolution is the caller's verdict on a conflicted record.
type ConflictResolution string

const (
	ResolveLocalWins  ConflictResolution = "LOCAL_WINS"  // Keep local fields, re-upload
	ResolveRemoteWins ConflictResolution = "REMOTE_WINS" // Adopt remote fields, mark synced
)

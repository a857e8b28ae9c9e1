package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncTransition_DefinedEvents(t *testing.T) {
	cases := []struct {
		from  SyncStatus
		event SyncEvent
		want  SyncStatus
	}{
		{SyncLocal, SyncEventQueued, SyncPending},
		{SyncLocal, SyncEventLocalEdit, SyncLocal},
		{SyncLocal, SyncEventDiverged, SyncConflict},
		{SyncPending, SyncEventQueued, SyncPending},
		{SyncPending, SyncEventLocalEdit, SyncPending},
		{SyncPending, SyncEventAcked, SyncSynced},
		{SyncPending, SyncEventDiverged, SyncConflict},
		{SyncSynced, SyncEventLocalEdit, SyncPending},
		{SyncConflict, SyncEventLocalEdit, SyncPending},
		{SyncConflict, SyncEventDiverged, SyncConflict},
		{SyncConflict, SyncEventResolveLocal, SyncPending},
		{SyncConflict, SyncEventResolveRemote, SyncSynced},
	}
	for _, tc := range cases {
		got, err := tc.from.Transition(tc.event)
		require.NoError(t, err, "%s on %s", tc.event, tc.from)
		assert.Equal(t, tc.want, got, "%s on %s", tc.event, tc.from)
	}
}

// Every (status, event) pair not in the transition table must be rejected
// with ErrInvalidSyncTransition and must leave the status unchanged.
func TestSyncTransition_UndefinedEventsAreErrors(t *testing.T) {
	cases := []struct {
		from  SyncStatus
		event SyncEvent
	}{
		{SyncLocal, SyncEventAcked},
		{SyncLocal, SyncEventResolveLocal},
		{SyncLocal, SyncEventResolveRemote},
		{SyncPending, SyncEventResolveLocal},
		{SyncPending, SyncEventResolveRemote},
		{SyncSynced, SyncEventQueued},
		{SyncSynced, SyncEventAcked},
		{SyncSynced, SyncEventDiverged},
		{SyncSynced, SyncEventResolveLocal},
		{SyncSynced, SyncEventResolveRemote},
		{SyncConflict, SyncEventQueued},
		{SyncConflict, SyncEventAcked},
	}
	for _, tc := range cases {
		got, err := tc.from.Transition(tc.event)
		require.ErrorIs(t, err, ErrInvalidSyncTransition, "%s on %s", tc.event, tc.from)
		assert.Equal(t, tc.from, got, "status must not move on %s from %s", tc.event, tc.from)
	}
}

// The table is exhaustive: every reachable status handles every event with
// exactly one outcome, either a defined next status or an explicit error.
func TestSyncTransition_Exhaustive(t *testing.T) {
	statuses := []SyncStatus{SyncLocal, SyncPending, SyncSynced, SyncConflict}
	events := []SyncEvent{
		SyncEventLocalEdit, SyncEventQueued, SyncEventAcked,
		SyncEventDiverged, SyncEventResolveLocal, SyncEventResolveRemote,
	}
	for _, s := range statuses {
		for _, e := range events {
			next, err := s.Transition(e)
			if err != nil {
				assert.ErrorIs(t, err, ErrInvalidSyncTransition)
				assert.Equal(t, s, next)
				continue
			}
			assert.Contains(t, statuses, next)
		}
	}
}

// Lifecycle scenario: create -> LOCAL, queue -> PENDING, ack -> SYNCED,
// local edit -> PENDING again.
func TestSyncTransition_Lifecycle(t *testing.T) {
	s := SyncLocal

	s, err := s.Transition(SyncEventQueued)
	require.NoError(t, err)
	require.Equal(t, SyncPending, s)

	s, err = s.Transition(SyncEventAcked)
	require.NoError(t, err)
	require.Equal(t, SyncSynced, s)

	s, err = s.Transition(SyncEventLocalEdit)
	require.NoError(t, err)
	require.Equal(t, SyncPending, s)
}

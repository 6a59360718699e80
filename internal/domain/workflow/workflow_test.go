package workflow

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendingState(t *testing.T) State {
	t.Helper()
	state, err := NewState("emp-1", "family matters", []string{"usr-a", "usr-b"})
	require.NoError(t, err)
	return state
}

func TestNewState(t *testing.T) {
	state := pendingState(t)
	assert.Equal(t, StatusPending, state.Status)
	assert.Equal(t, "emp-1", state.SubmittedBy)
	assert.Equal(t, []string{"usr-a", "usr-b"}, state.ApproverIDs)
	assert.Nil(t, state.DecidedBy)

	_, err := NewState("", "reason", []string{"usr-a"})
	assert.ErrorIs(t, err, ErrMissingSubmitter)

	_, err = NewState("emp-1", "", []string{"usr-a"})
	assert.ErrorIs(t, err, ErrMissingReason)

	_, err = NewState("emp-1", "reason", nil)
	assert.ErrorIs(t, err, ErrNoApproversAvailable)
}

func TestNewState_CopiesApproverSnapshot(t *testing.T) {
	ids := []string{"usr-a"}
	state, err := NewState("emp-1", "reason", ids)
	require.NoError(t, err)

	ids[0] = "usr-z"
	assert.Equal(t, []string{"usr-a"}, state.ApproverIDs)
}

func TestApprove(t *testing.T) {
	state := pendingState(t)
	now := time.Now().UTC()

	require.NoError(t, state.Approve("usr-b", now))
	assert.Equal(t, StatusApproved, state.Status)
	require.NotNil(t, state.DecidedBy)
	assert.Equal(t, "usr-b", *state.DecidedBy)
	require.NotNil(t, state.DecidedAt)
	assert.Equal(t, now, *state.DecidedAt)
}

func TestApprove_NotApprover(t *testing.T) {
	state := pendingState(t)
	err := state.Approve("usr-stranger", time.Now().UTC())
	assert.ErrorIs(t, err, ErrNotApprover)
	assert.Equal(t, StatusPending, state.Status)
}

func TestDecide_TerminalStateRefusesRepeat(t *testing.T) {
	now := time.Now().UTC()

	state := pendingState(t)
	require.NoError(t, state.Approve("usr-a", now))
	assert.ErrorIs(t, state.Approve("usr-a", now), ErrInvalidTransition)
	assert.ErrorIs(t, state.Reject("usr-a", now), ErrInvalidTransition)
	assert.ErrorIs(t, state.Cancel("emp-1", now), ErrInvalidTransition)

	state = pendingState(t)
	require.NoError(t, state.Reject("usr-a", now))
	assert.ErrorIs(t, state.Approve("usr-a", now), ErrInvalidTransition)

	state = pendingState(t)
	require.NoError(t, state.Cancel("emp-1", now))
	assert.ErrorIs(t, state.Approve("usr-a", now), ErrInvalidTransition)
}

func TestCancel(t *testing.T) {
	state := pendingState(t)
	now := time.Now().UTC()

	assert.ErrorIs(t, state.Cancel("emp-other", now), ErrNotSubmitter)
	assert.Equal(t, StatusPending, state.Status)

	require.NoError(t, state.Cancel("emp-1", now))
	assert.Equal(t, StatusCancelled, state.Status)
	require.NotNil(t, state.CancelledAt)
	assert.Nil(t, state.DecidedBy)
}

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.True(t, StatusApproved.Terminal())
	assert.True(t, StatusRejected.Terminal())
	assert.True(t, StatusCancelled.Terminal())
}

package request

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadside/internal/pkg/errs"
)

func TestStatus_Validate(t *testing.T) {
	valid := []Status{
		StatusSearching,
		StatusAccepted,
		StatusInProgress,
		StatusCompleted,
		StatusCancelled,
		StatusTimedOut,
	}
	for _, s := range valid {
		assert.NoError(t, s.Validate(), s.String())
	}

	assert.Error(t, StatusUnknown.Validate())
	assert.Error(t, Status(42).Validate())
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "SEARCHING", StatusSearching.String())
	assert.Equal(t, "ACCEPTED", StatusAccepted.String())
	assert.Equal(t, "IN_PROGRESS", StatusInProgress.String())
	assert.Equal(t, "COMPLETED", StatusCompleted.String())
	assert.Equal(t, "CANCELLED", StatusCancelled.String())
	assert.Equal(t, "TIMEOUT", StatusTimedOut.String())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusSearching.IsTerminal())
	assert.False(t, StatusAccepted.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())

	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.True(t, StatusTimedOut.IsTerminal())
}

func TestStatus_Accept(t *testing.T) {
	next, err := StatusSearching.Accept()
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, next)

	for _, s := range []Status{StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled, StatusTimedOut} {
		_, err := s.Accept()
		requireConflictInState(t, err, s)
	}
}

func TestStatus_Start(t *testing.T) {
	next, err := StatusAccepted.Start()
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, next)

	for _, s := range []Status{StatusSearching, StatusInProgress, StatusCompleted, StatusCancelled, StatusTimedOut} {
		_, err := s.Start()
		requireConflictInState(t, err, s)
	}
}

func TestStatus_Complete(t *testing.T) {
	next, err := StatusInProgress.Complete()
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, next)

	for _, s := range []Status{StatusSearching, StatusAccepted, StatusCompleted, StatusCancelled, StatusTimedOut} {
		_, err := s.Complete()
		requireConflictInState(t, err, s)
	}
}

func TestStatus_Cancel(t *testing.T) {
	for _, s := range []Status{StatusSearching, StatusAccepted} {
		next, err := s.Cancel()
		require.NoError(t, err, s.String())
		assert.Equal(t, StatusCancelled, next)
	}

	for _, s := range []Status{StatusInProgress, StatusCompleted, StatusCancelled, StatusTimedOut} {
		_, err := s.Cancel()
		requireConflictInState(t, err, s)
	}
}

func TestStatus_TimeOut(t *testing.T) {
	next, err := StatusSearching.TimeOut()
	require.NoError(t, err)
	assert.Equal(t, StatusTimedOut, next)

	for _, s := range []Status{StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled, StatusTimedOut} {
		_, err := s.TimeOut()
		requireConflictInState(t, err, s)
	}
}

// Terminal statuses must reject every transition.
func TestStatus_TerminalStatusesAreFinal(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusTimedOut} {
		_, err := s.Accept()
		assert.ErrorIs(t, err, errs.ErrConflict, s.String())
		_, err = s.Start()
		assert.ErrorIs(t, err, errs.ErrConflict, s.String())
		_, err = s.Complete()
		assert.ErrorIs(t, err, errs.ErrConflict, s.String())
		_, err = s.Cancel()
		assert.ErrorIs(t, err, errs.ErrConflict, s.String())
		_, err = s.TimeOut()
		assert.ErrorIs(t, err, errs.ErrConflict, s.String())
	}
}

func requireConflictInState(t *testing.T, err error, s Status) {
	t.Helper()
	require.Error(t, err, s.String())
	require.ErrorIs(t, err, errs.ErrConflict, s.String())

	var conflictErr *errs.ConflictError
	require.True(t, errors.As(err, &conflictErr))
	assert.Equal(t, s.String(), conflictErr.CurrentState)
}

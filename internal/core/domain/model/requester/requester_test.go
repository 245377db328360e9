package requester

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
)

func TestNewRequester(t *testing.T) {
	id := kernel.NewUUID()

	r, err := NewRequester(id, "Anita")
	require.NoError(t, err)

	assert.NoError(t, r.Validate())
	assert.Equal(t, id, r.ID())
	assert.Equal(t, "Anita", r.Name())
	assert.Nil(t, r.ActiveRequestID())
	assert.Equal(t, 1, r.Version())
}

func TestNewRequester_InvalidParams(t *testing.T) {
	_, err := NewRequester(kernel.UUID{}, "Anita")
	assert.Error(t, err)

	_, err = NewRequester(kernel.NewUUID(), "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRequester_BindRequest(t *testing.T) {
	r, err := NewRequester(kernel.NewUUID(), "Anita")
	require.NoError(t, err)
	requestID := kernel.NewUUID()

	require.NoError(t, r.BindRequest(requestID))

	require.NotNil(t, r.ActiveRequestID())
	assert.True(t, r.ActiveRequestID().IsEqual(requestID))
}

func TestRequester_BindRequest_SameIDIsIdempotent(t *testing.T) {
	r, err := NewRequester(kernel.NewUUID(), "Anita")
	require.NoError(t, err)
	requestID := kernel.NewUUID()
	require.NoError(t, r.BindRequest(requestID))

	require.NoError(t, r.BindRequest(requestID))
	assert.True(t, r.ActiveRequestID().IsEqual(requestID))
}

func TestRequester_BindRequest_SecondRequestRejected(t *testing.T) {
	r, err := NewRequester(kernel.NewUUID(), "Anita")
	require.NoError(t, err)
	first := kernel.NewUUID()
	require.NoError(t, r.BindRequest(first))

	err = r.BindRequest(kernel.NewUUID())
	require.ErrorIs(t, err, errs.ErrConflict)

	var conflictErr *errs.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, ErrAnotherRequestIsActive, conflictErr.Cause)
	assert.Equal(t, first.String(), conflictErr.CurrentState)

	assert.True(t, r.ActiveRequestID().IsEqual(first))
}

func TestRequester_ClearActiveRequest(t *testing.T) {
	r, err := NewRequester(kernel.NewUUID(), "Anita")
	require.NoError(t, err)
	require.NoError(t, r.BindRequest(kernel.NewUUID()))

	r.ClearActiveRequest()
	assert.Nil(t, r.ActiveRequestID())

	// clearing again is a no-op
	r.ClearActiveRequest()
	assert.Nil(t, r.ActiveRequestID())
}

func TestRestoreRequester(t *testing.T) {
	activeRequestID := kernel.NewUUID()

	r, err := RestoreRequester(RestoreRequesterParams{
		ID:              kernel.NewUUID(),
		Name:            "Anita",
		ActiveRequestID: &activeRequestID,
		Version:         2,
	})
	require.NoError(t, err)

	assert.NoError(t, r.Validate())
	assert.Equal(t, 2, r.Version())
	require.NotNil(t, r.ActiveRequestID())
	assert.True(t, r.ActiveRequestID().IsEqual(activeRequestID))
}

func TestRestoreRequester_InvalidVersion(t *testing.T) {
	_, err := RestoreRequester(RestoreRequesterParams{
		ID:      kernel.NewUUID(),
		Name:    "Anita",
		Version: 0,
	})
	require.ErrorIs(t, err, errs.ErrVersionIsInvalid)
}

func TestRequester_Validate_NotConstructed(t *testing.T) {
	var r Requester
	assert.ErrorIs(t, r.Validate(), ErrRequesterIsNotConstructed)
}

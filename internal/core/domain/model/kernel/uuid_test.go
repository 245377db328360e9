package kernel_test

import (
	"testing"

	"roadside/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID_RoundTrips(t *testing.T) {
	id := kernel.NewUUID()
	require.NoError(t, id.Validate())

	fromString, err := kernel.UUIDFromString(id.String())
	require.NoError(t, err)
	assert.True(t, id.IsEqual(fromString))

	raw := id.Bytes()
	fromBytes, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)
	assert.True(t, id.IsEqual(fromBytes))
}

func TestUUIDFromString_RejectsMalformedInput(t *testing.T) {
	for _, s := range []string{"", "not-a-uuid", "00000000-0000-0000-0000-000000000000"} {
		_, err := kernel.UUIDFromString(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestUUID_ZeroValueFailsValidation(t *testing.T) {
	var id kernel.UUID
	require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}

func TestNewUUID_IsUnique(t *testing.T) {
	assert.False(t, kernel.NewUUID().IsEqual(kernel.NewUUID()))
}

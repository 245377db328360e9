package kernel

import (
	"roadside/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrUUIDIsNotConstructed is returned when a UUID is the zero value, meaning
// it was not created through one of the constructor functions.
var ErrUUIDIsNotConstructed = errs.NewValueIsRequiredError(
	"UUID must be created via NewUUID, UUIDFromString or UUIDFromBytes")

// UUID is the identity type for all aggregates in the system. It wraps
// github.com/google/uuid so that the rest of the domain depends on a single
// validated identifier type rather than raw strings or byte arrays.
//
// Example:
//
//	id := kernel.NewUUID()
//	restored, err := kernel.UUIDFromString(id.String())
//	if err != nil {
//	    // malformed identifier
//	}
type UUID struct {
	id uuid.UUID
}

// NewUUID generates a new random (version 4) UUID.
func NewUUID() UUID {
	return UUID{id: uuid.New()}
}

// UUIDFromString parses a UUID from its canonical string form.
// Returns a ValueIsInvalidError if the string is malformed or the nil UUID.
func UUIDFromString(s string) (UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}
	if parsed == uuid.Nil {
		return UUID{}, errs.NewValueIsInvalidError("uuid")
	}
	return UUID{id: parsed}, nil
}

// UUIDFromBytes restores a UUID from its 16-byte representation, typically
// when reconstructing aggregates from persistence.
func UUIDFromBytes(b []byte) (UUID, error) {
	parsed, err := uuid.FromBytes(b)
	if err != nil {
		return UUID{}, errs.NewValueIsInvalidErrorWithCause("uuid", err)
	}
	if parsed == uuid.Nil {
		return UUID{}, errs.NewValueIsInvalidError("uuid")
	}
	return UUID{id: parsed}, nil
}

// String returns the canonical string form of the UUID.
func (u UUID) String() string {
	return u.id.String()
}

// Bytes returns the underlying uuid.UUID value for persistence adapters.
func (u UUID) Bytes() uuid.UUID {
	return u.id
}

// IsEqual reports whether two UUIDs identify the same entity.
func (u UUID) IsEqual(other UUID) bool {
	return u.id == other.id
}

// Validate returns ErrUUIDIsNotConstructed for the zero value.
func (u UUID) Validate() error {
	if u.id == uuid.Nil {
		return ErrUUIDIsNotConstructed
	}
	return nil
}

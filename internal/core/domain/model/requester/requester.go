package requester

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

// ErrRequesterIsNotConstructed is returned when a Requester instance was not
// created through NewRequester or RestoreRequester.
var ErrRequesterIsNotConstructed = errors.New("Requester must be created via NewRequester or RestoreRequester")

// ErrAnotherRequestIsActive is the cause attached to the ConflictError
// returned when a requester with an open request tries to bind a new one.
var ErrAnotherRequestIsActive = errors.New("another request is already active")

// Requester is the aggregate for a vehicle owner asking for help. Its single
// piece of behaviour is the one-open-request rule: a requester holds at most
// one non-terminal request at a time, tracked by activeRequestID.
type Requester struct {
	id   kernel.UUID
	name string

	activeRequestID *kernel.UUID

	version int
	guard   guard.ConstructorGuard
}

// NewRequester registers a requester with no active request.
func NewRequester(id kernel.UUID, name string) (*Requester, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("name")
	}

	return &Requester{
		id:      id,
		name:    name,
		version: 1,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreRequesterParams carries the full persisted state of a requester.
type RestoreRequesterParams struct {
	ID              kernel.UUID
	Name            string
	ActiveRequestID *kernel.UUID
	Version         int
}

// RestoreRequester reconstructs a Requester aggregate from persistent storage.
func RestoreRequester(p RestoreRequesterParams) (*Requester, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}
	if p.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("requester")
	}

	return &Requester{
		id:              p.ID,
		name:            p.Name,
		activeRequestID: p.ActiveRequestID,
		version:         p.Version,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Requester was created through a constructor.
func (r *Requester) Validate() error {
	if r == nil {
		return ErrRequesterIsNotConstructed
	}
	return r.guard.Validate(ErrRequesterIsNotConstructed)
}

// IsEqual compares two requesters by identity.
func (r *Requester) IsEqual(other *Requester) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// BindRequest records the requester's open request. Binding the id that is
// already bound is a no-op; binding a different id while one is active fails
// with a ConflictError caused by ErrAnotherRequestIsActive.
func (r *Requester) BindRequest(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	if r.activeRequestID != nil {
		if r.activeRequestID.IsEqual(requestID) {
			return nil
		}
		return errs.NewConflictErrorWithCause(
			"requester", r.activeRequestID.String(), ErrAnotherRequestIsActive)
	}

	r.activeRequestID = &requestID
	return nil
}

// ClearActiveRequest drops the open-request binding after the request reached
// a terminal status. Clearing an unbound requester is a no-op.
func (r *Requester) ClearActiveRequest() {
	r.activeRequestID = nil
}

// ID returns the requester's unique identifier.
func (r *Requester) ID() kernel.UUID { return r.id }

// Name returns the requester's display name.
func (r *Requester) Name() string { return r.name }

// ActiveRequestID returns the requester's open request id, or nil.
func (r *Requester) ActiveRequestID() *kernel.UUID { return r.activeRequestID }

// Version returns the optimistic-concurrency version of the persisted state
// this aggregate was restored from.
func (r *Requester) Version() int { return r.version }

package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrRefreshSearchingRequestsCommandIsNotConstructed = errors.New(
	"RefreshSearchingRequestsCommand must be created via a constructor",
)

// RefreshSearchingRequestsCommand runs the escalation policy over searching
// requests: either one targeted request (the read paths refresh the record
// they are about to serve) or every SEARCHING request (the background sweep).
type RefreshSearchingRequestsCommand struct { //nolint:recvcheck //using for validation
	requestID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewRefreshSearchingRequestsCommand creates a sweep command over all
// SEARCHING requests.
func NewRefreshSearchingRequestsCommand() RefreshSearchingRequestsCommand {
	return RefreshSearchingRequestsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// NewRefreshSearchingRequestCommand creates a refresh command targeting a
// single request.
func NewRefreshSearchingRequestCommand(requestID kernel.UUID) (RefreshSearchingRequestsCommand, error) {
	if err := requestID.Validate(); err != nil {
		return RefreshSearchingRequestsCommand{}, err
	}

	return RefreshSearchingRequestsCommand{
		requestID: &requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through a constructor.
func (c RefreshSearchingRequestsCommand) Validate() error {
	return c.guard.Validate(ErrRefreshSearchingRequestsCommandIsNotConstructed)
}

// RequestID returns the targeted request id, or nil for a full sweep.
func (c RefreshSearchingRequestsCommand) RequestID() *kernel.UUID {
	return c.requestID
}

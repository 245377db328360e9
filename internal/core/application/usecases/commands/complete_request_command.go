package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrCompleteRequestCommandIsNotConstructed = errors.New(
	"CompleteRequestCommand must be created via NewCompleteRequestCommand constructor",
)

// CompleteRequestCommand represents the requester confirming the service
// was delivered.
type CompleteRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	callerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCompleteRequestCommand creates a command to complete a request. The
// caller id is checked against the request's requester by the aggregate.
func NewCompleteRequestCommand(requestID, callerID kernel.UUID) (CompleteRequestCommand, error) {
	command := CompleteRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setCallerID(callerID),
	); err != nil {
		return CompleteRequestCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteRequestCommand) Validate() error {
	return c.guard.Validate(ErrCompleteRequestCommandIsNotConstructed)
}

// RequestID returns the request being completed.
func (c CompleteRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// CallerID returns who is asking for completion.
func (c CompleteRequestCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c *CompleteRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *CompleteRequestCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrCancelRequestCommandIsNotConstructed = errors.New(
	"CancelRequestCommand must be created via NewCancelRequestCommand constructor",
)

// CancelRequestCommand represents the requester calling off a request before
// service starts.
type CancelRequestCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	callerID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelRequestCommand creates a command to cancel a request.
func NewCancelRequestCommand(requestID, callerID kernel.UUID) (CancelRequestCommand, error) {
	command := CancelRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setCallerID(callerID),
	); err != nil {
		return CancelRequestCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelRequestCommand) Validate() error {
	return c.guard.Validate(ErrCancelRequestCommandIsNotConstructed)
}

// RequestID returns the request being cancelled.
func (c CancelRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// CallerID returns who is asking for cancellation.
func (c CancelRequestCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c *CancelRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *CancelRequestCommand) setCallerID(callerID kernel.UUID) error {
	if err := callerID.Validate(); err != nil {
		return err
	}

	c.callerID = callerID
	return nil
}

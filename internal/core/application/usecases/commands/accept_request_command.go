package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrAcceptRequestCommandIsNotConstructed = errors.New(
	"AcceptRequestCommand must be created via NewAcceptRequestCommand constructor",
)

// AcceptRequestCommand represents a provider taking on a searching request.
type AcceptRequestCommand struct { //nolint:recvcheck //using for validation
	requestID  kernel.UUID
	providerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptRequestCommand creates a command for a provider to accept a request.
func NewAcceptRequestCommand(requestID, providerID kernel.UUID) (AcceptRequestCommand, error) {
	command := AcceptRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setProviderID(providerID),
	); err != nil {
		return AcceptRequestCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptRequestCommand) Validate() error {
	return c.guard.Validate(ErrAcceptRequestCommandIsNotConstructed)
}

// RequestID returns the request being accepted.
func (c AcceptRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// ProviderID returns the provider accepting the request.
func (c AcceptRequestCommand) ProviderID() kernel.UUID {
	return c.providerID
}

func (c *AcceptRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *AcceptRequestCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	c.providerID = providerID
	return nil
}

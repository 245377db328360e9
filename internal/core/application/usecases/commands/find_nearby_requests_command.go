package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrFindNearbyRequestsCommandIsNotConstructed = errors.New(
	"FindNearbyRequestsCommand must be created via NewFindNearbyRequestsCommand constructor",
)

// FindNearbyRequestsCommand represents a provider scanning for work: which
// searching requests within reach match their skills.
type FindNearbyRequestsCommand struct { //nolint:recvcheck //using for validation
	providerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFindNearbyRequestsCommand creates a command to scan for matching
// requests.
func NewFindNearbyRequestsCommand(providerID kernel.UUID) (FindNearbyRequestsCommand, error) {
	command := FindNearbyRequestsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setProviderID(providerID); err != nil {
		return FindNearbyRequestsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c FindNearbyRequestsCommand) Validate() error {
	return c.guard.Validate(ErrFindNearbyRequestsCommandIsNotConstructed)
}

// ProviderID returns the scanning provider.
func (c FindNearbyRequestsCommand) ProviderID() kernel.UUID {
	return c.providerID
}

func (c *FindNearbyRequestsCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	c.providerID = providerID
	return nil
}

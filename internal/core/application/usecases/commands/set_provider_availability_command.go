package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var ErrSetProviderAvailabilityCommandIsNotConstructed = errors.New(
	"SetProviderAvailabilityCommand must be created via NewSetProviderAvailabilityCommand constructor",
)

// SetProviderAvailabilityCommand represents a provider going on or off the
// market. Going online requires a location; going offline does not.
type SetProviderAvailabilityCommand struct { //nolint:recvcheck //using for validation
	providerID kernel.UUID
	available  bool
	location   *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewSetProviderAvailabilityCommand creates a command to toggle provider
// availability. location is required when available is true and ignored
// otherwise.
func NewSetProviderAvailabilityCommand(
	providerID kernel.UUID, available bool, location *kernel.GeoPoint,
) (SetProviderAvailabilityCommand, error) {
	command := SetProviderAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setProviderID(providerID); err != nil {
		return SetProviderAvailabilityCommand{}, err
	}

	if available {
		if location == nil {
			return SetProviderAvailabilityCommand{}, errs.NewValueIsRequiredError("location")
		}
		if err := location.Validate(); err != nil {
			return SetProviderAvailabilityCommand{}, err
		}
		command.location = location
	}

	command.available = available
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SetProviderAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetProviderAvailabilityCommandIsNotConstructed)
}

// ProviderID returns the provider toggling availability.
func (c SetProviderAvailabilityCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// Available reports the requested availability.
func (c SetProviderAvailabilityCommand) Available() bool {
	return c.available
}

// Location returns the position to go online at, or nil when going offline.
func (c SetProviderAvailabilityCommand) Location() *kernel.GeoPoint {
	return c.location
}

func (c *SetProviderAvailabilityCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	c.providerID = providerID
	return nil
}

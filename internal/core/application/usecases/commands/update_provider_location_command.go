package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrUpdateProviderLocationCommandIsNotConstructed = errors.New(
	"UpdateProviderLocationCommand must be created via NewUpdateProviderLocationCommand constructor",
)

// UpdateProviderLocationCommand represents a provider reporting their
// current position while working a request.
type UpdateProviderLocationCommand struct { //nolint:recvcheck //using for validation
	providerID kernel.UUID
	location   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateProviderLocationCommand creates a command to report a provider's
// position.
func NewUpdateProviderLocationCommand(
	providerID kernel.UUID, location kernel.GeoPoint,
) (UpdateProviderLocationCommand, error) {
	command := UpdateProviderLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setProviderID(providerID),
		command.setLocation(location),
	); err != nil {
		return UpdateProviderLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateProviderLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateProviderLocationCommandIsNotConstructed)
}

// ProviderID returns the reporting provider.
func (c UpdateProviderLocationCommand) ProviderID() kernel.UUID {
	return c.providerID
}

// Location returns the reported position.
func (c UpdateProviderLocationCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *UpdateProviderLocationCommand) setProviderID(providerID kernel.UUID) error {
	if err := providerID.Validate(); err != nil {
		return err
	}

	c.providerID = providerID
	return nil
}

func (c *UpdateProviderLocationCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var ErrCreateRequestCommandIsNotConstructed = errors.New(
	"CreateRequestCommand must be created via NewCreateRequestCommand constructor",
)

// CreateRequestCommand represents a requester asking for roadside help.
// Encapsulates the request identity, who is asking, what vehicle and service
// kind, where, and an optional free-text description.
//
// Example:
//
//	requestID := kernel.NewUUID()
//	cmd, err := NewCreateRequestCommand(
//	    requestID, requesterID, kernel.VehicleCar, kernel.ServiceBattery,
//	    "battery died overnight", location)
//	if err != nil {
//	    return fmt.Errorf("invalid request data: %w", err)
//	}
//
//	handler := NewCreateRequestCommandHandler(uowFactory, policy)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create request: %w", err)
//	}
type CreateRequestCommand struct { //nolint:recvcheck //using for validation
	requestID   kernel.UUID
	requesterID kernel.UUID
	vehicle     kernel.VehicleCategory
	service     kernel.ServiceCategory
	description string
	location    kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateRequestCommand creates a command to open a new service request.
// Validates identities, both categories and the location; the description
// may be empty.
func NewCreateRequestCommand(
	requestID kernel.UUID,
	requesterID kernel.UUID,
	vehicle kernel.VehicleCategory,
	service kernel.ServiceCategory,
	description string,
	location kernel.GeoPoint,
) (CreateRequestCommand, error) {
	command := CreateRequestCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setRequesterID(requesterID),
		command.setVehicle(vehicle),
		command.setService(service),
		command.setLocation(location),
	); err != nil {
		return CreateRequestCommand{}, err
	}

	command.description = description
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateRequestCommand) Validate() error {
	return c.guard.Validate(ErrCreateRequestCommandIsNotConstructed)
}

// RequestID returns the unique identifier for the new request.
func (c CreateRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// RequesterID returns the identity of the requester opening the request.
func (c CreateRequestCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

// Vehicle returns the vehicle category needing service.
func (c CreateRequestCommand) Vehicle() kernel.VehicleCategory {
	return c.vehicle
}

// Service returns the kind of service requested.
func (c CreateRequestCommand) Service() kernel.ServiceCategory {
	return c.service
}

// Description returns the free-text problem description, possibly empty.
func (c CreateRequestCommand) Description() string {
	return c.description
}

// Location returns where help is needed.
func (c CreateRequestCommand) Location() kernel.GeoPoint {
	return c.location
}

func (c *CreateRequestCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *CreateRequestCommand) setRequesterID(requesterID kernel.UUID) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	c.requesterID = requesterID
	return nil
}

func (c *CreateRequestCommand) setVehicle(vehicle kernel.VehicleCategory) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	c.vehicle = vehicle
	return nil
}

func (c *CreateRequestCommand) setService(service kernel.ServiceCategory) error {
	if err := service.Validate(); err != nil {
		return err
	}

	c.service = service
	return nil
}

func (c *CreateRequestCommand) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = location
	return nil
}

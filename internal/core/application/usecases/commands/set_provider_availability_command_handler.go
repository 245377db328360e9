package commands

import (
	"context"
	"time"
)

// SetProviderAvailabilityCommandHandler toggles a provider on or off the
// market. Single-record write; the aggregate enforces that a provider with
// an active request cannot toggle and that going online needs verification.
type SetProviderAvailabilityCommandHandler struct {
	uowFactory ProviderUoWFactory
}

// NewSetProviderAvailabilityCommandHandler creates a handler for
// availability toggles.
func NewSetProviderAvailabilityCommandHandler(
	uowFactory ProviderUoWFactory,
) SetProviderAvailabilityCommandHandler {
	return SetProviderAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the availability toggle.
func (h SetProviderAvailabilityCommandHandler) Handle(
	ctx context.Context, cmd SetProviderAvailabilityCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	providerRepo := uow.ProviderRepository()

	mechanic, err := providerRepo.Get(ctx, cmd.ProviderID())
	if err != nil {
		return err
	}

	if cmd.Available() {
		err = mechanic.GoOnline(*cmd.Location(), time.Now())
	} else {
		err = mechanic.GoOffline()
	}
	if err != nil {
		return err
	}

	if err = providerRepo.Update(ctx, mechanic); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

package commands

import (
	"context"
	"time"
)

// UpdateProviderLocationCommandHandler records a provider's position. The
// provider's own record always takes the new position; when the provider is
// assigned to a request the snapshot on that request is refreshed too, so
// the requester's status view can show where their mechanic is.
type UpdateProviderLocationCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateProviderLocationCommandHandler creates a handler for provider
// location reports.
func NewUpdateProviderLocationCommandHandler(uowFactory UoWFactory) UpdateProviderLocationCommandHandler {
	return UpdateProviderLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the location report.
func (h UpdateProviderLocationCommandHandler) Handle(
	ctx context.Context, cmd UpdateProviderLocationCommand,
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
	requestRepo := uow.RequestRepository()

	mechanic, err := providerRepo.Get(ctx, cmd.ProviderID())
	if err != nil {
		return err
	}

	now := time.Now()
	if err = mechanic.UpdateLocation(cmd.Location(), now); err != nil {
		return err
	}
	if err = providerRepo.Update(ctx, mechanic); err != nil {
		return err
	}

	if mechanic.ActiveRequestID() != nil {
		serviceRequest, err := requestRepo.Get(ctx, *mechanic.ActiveRequestID())
		if err != nil {
			return err
		}
		if err = serviceRequest.UpdateProviderLocation(cmd.ProviderID(), cmd.Location()); err != nil {
			return err
		}
		if err = requestRepo.Update(ctx, serviceRequest); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

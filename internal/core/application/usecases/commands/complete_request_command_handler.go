package commands

import (
	"context"
	"time"
)

// CompleteRequestCommandHandler closes a service episode: the request goes
// to COMPLETED, the assigned provider is released back onto the market and
// the requester's active-request slot is freed. The three writes run in one
// transaction; the releases are idempotent, so a retry after a partial
// failure converges.
type CompleteRequestCommandHandler struct {
	uowFactory UoWFactory
}

// NewCompleteRequestCommandHandler creates a handler for request completion.
func NewCompleteRequestCommandHandler(uowFactory UoWFactory) CompleteRequestCommandHandler {
	return CompleteRequestCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion. Only the original requester may complete
// (NotEligible otherwise), and only from IN_PROGRESS (Conflict otherwise).
func (h CompleteRequestCommandHandler) Handle(ctx context.Context, cmd CompleteRequestCommand) error {
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

	requestRepo := uow.RequestRepository()
	providerRepo := uow.ProviderRepository()
	requesterRepo := uow.RequesterRepository()

	serviceRequest, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if err = serviceRequest.Complete(cmd.CallerID(), time.Now()); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, serviceRequest); err != nil {
		return err
	}

	if serviceRequest.ProviderID() != nil {
		mechanic, err := providerRepo.Get(ctx, *serviceRequest.ProviderID())
		if err != nil {
			return err
		}
		mechanic.Release()
		if err = providerRepo.Update(ctx, mechanic); err != nil {
			return err
		}
	}

	owner, err := requesterRepo.Get(ctx, serviceRequest.RequesterID())
	if err != nil {
		return err
	}
	owner.ClearActiveRequest()
	if err = requesterRepo.Update(ctx, owner); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

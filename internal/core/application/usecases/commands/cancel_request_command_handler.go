package commands

import (
	"context"
	"time"

	"roadside/internal/core/domain/services"
	"roadside/internal/pkg/errs"
)

// CancelRequestCommandHandler moves a request to CANCELLED on the
// requester's behalf and frees whatever the request was holding: the
// assigned provider (if any) goes back on the market, the requester's
// active-request slot clears.
//
// The request is first brought up to date through the escalation policy. A
// cancel racing against the lazy timeout resolves cleanly: if the window
// already expired the timeout is persisted and the cancel fails with
// Conflict instead of rewriting a terminal record.
type CancelRequestCommandHandler struct {
	uowFactory UoWFactory
	policy     services.EscalationPolicy
}

// NewCancelRequestCommandHandler creates a handler for request cancellation.
func NewCancelRequestCommandHandler(
	uowFactory UoWFactory, policy services.EscalationPolicy,
) CancelRequestCommandHandler {
	return CancelRequestCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the cancellation. Only the original requester may cancel
// (NotEligible otherwise), and only from SEARCHING or ACCEPTED (Conflict
// otherwise, including after service started).
func (h CancelRequestCommandHandler) Handle(ctx context.Context, cmd CancelRequestCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Validate(); err != nil {
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

	now := time.Now()
	outcome, err := h.policy.Evaluate(serviceRequest, now)
	if err != nil {
		return err
	}
	timedOut := outcome == services.OutcomeTimedOut

	if !timedOut {
		if err = serviceRequest.Cancel(cmd.CallerID(), now); err != nil {
			return err
		}
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

	if timedOut {
		return errs.NewConflictError("request", serviceRequest.Status().String())
	}

	return nil
}

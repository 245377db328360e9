package commands

import (
	"context"
	"errors"
	"time"

	"roadside/internal/core/domain/model/request"
	"roadside/internal/core/domain/services"
	"roadside/internal/pkg/errs"
)

// RefreshSearchingRequestsCommandHandler applies the lazy escalation policy.
// Every read path runs it before serving a SEARCHING request, advancing an
// overdue request one step at the moment anyone looks at it; the cron sweep
// runs the same handler so unwatched requests keep walking the ladder too.
//
// Each request is evaluated and persisted independently: a conflict on one
// record (someone accepted it mid-sweep) does not fail the others, it just
// means that record no longer needed refreshing.
type RefreshSearchingRequestsCommandHandler struct {
	uowFactory UoWFactory
	policy     services.EscalationPolicy
}

// NewRefreshSearchingRequestsCommandHandler creates a handler for the
// escalation refresh.
func NewRefreshSearchingRequestsCommandHandler(
	uowFactory UoWFactory, policy services.EscalationPolicy,
) RefreshSearchingRequestsCommandHandler {
	return RefreshSearchingRequestsCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle refreshes the targeted request, or every SEARCHING request when no
// target is set. Requests that time out also free their requester's
// active-request slot.
func (h RefreshSearchingRequestsCommandHandler) Handle(
	ctx context.Context, cmd RefreshSearchingRequestsCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := h.policy.Validate(); err != nil {
		return err
	}

	if cmd.RequestID() != nil {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}
		defer func() {
			_ = uow.Rollback(ctx)
		}()

		serviceRequest, err := uow.RequestRepository().Get(ctx, *cmd.RequestID())
		if err != nil {
			return err
		}

		return h.refreshOne(ctx, uow, serviceRequest)
	}

	return h.refreshAll(ctx)
}

func (h RefreshSearchingRequestsCommandHandler) refreshAll(ctx context.Context) error {
	listUow := h.uowFactory.Create()
	if err := listUow.Begin(ctx); err != nil {
		return err
	}

	searching, err := listUow.RequestRepository().GetAllInSearchingStatus(ctx)
	if rollbackErr := listUow.Rollback(ctx); rollbackErr != nil && err == nil {
		err = rollbackErr
	}
	if err != nil {
		return err
	}

	for _, serviceRequest := range searching {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		err = h.refreshOne(ctx, uow, serviceRequest)
		_ = uow.Rollback(ctx)
		if errors.Is(err, errs.ErrConflict) || errors.Is(err, errs.ErrVersionIsInvalid) {
			// someone accepted or cancelled it mid-sweep; their write wins
			continue
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// refreshOne evaluates a single request inside an already-begun transaction
// and commits when the policy changed anything. The caller owns the
// rollback of the no-op and error paths.
func (h RefreshSearchingRequestsCommandHandler) refreshOne(
	ctx context.Context, uow UoW, serviceRequest *request.Request,
) error {
	outcome, err := h.policy.Evaluate(serviceRequest, time.Now())
	if err != nil {
		return err
	}
	if outcome == services.OutcomeNone {
		return nil
	}

	if err = uow.RequestRepository().Update(ctx, serviceRequest); err != nil {
		return err
	}

	if outcome == services.OutcomeTimedOut {
		owner, err := uow.RequesterRepository().Get(ctx, serviceRequest.RequesterID())
		if err != nil {
			return err
		}
		owner.ClearActiveRequest()
		if err = uow.RequesterRepository().Update(ctx, owner); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

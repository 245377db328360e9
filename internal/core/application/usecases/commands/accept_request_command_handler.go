package commands

import (
	"context"
	"math/rand/v2"
	"strconv"
	"time"

	"roadside/internal/core/domain/model/request"
	"roadside/internal/core/domain/services"
	"roadside/internal/pkg/errs"
)

// AcceptRequestCommandHandler is the assignment coordinator: the one place
// in the system where three records change together. In a single transaction
// it locks the request to the provider, takes the provider off the market and
// syncs the requester's active-request id. The repositories' versioned writes
// guarantee that of two providers racing for the same request exactly one
// commits; the loser observes a Conflict.
//
// Before the status check, the request is brought up to date through the
// escalation policy: accepting a request whose search window already expired
// persists the timeout and fails with Conflict rather than resurrecting it.
//
// Example:
//
//	handler := NewAcceptRequestCommandHandler(uowFactory, policy)
//	cmd, _ := NewAcceptRequestCommand(requestID, providerID)
//	code, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrNotEligible):
//	    // provider unverified, offline or already assigned
//	case errors.Is(err, errs.ErrConflict):
//	    // request no longer SEARCHING, or a racing accept won
//	}
type AcceptRequestCommandHandler struct {
	uowFactory UoWFactory
	policy     services.EscalationPolicy
}

// NewAcceptRequestCommandHandler creates a handler for request acceptance.
func NewAcceptRequestCommandHandler(
	uowFactory UoWFactory, policy services.EscalationPolicy,
) AcceptRequestCommandHandler {
	return AcceptRequestCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the acceptance. Loads the provider and checks
// eligibility, refreshes the request through the escalation policy, then
// performs the three-record assignment with a fresh verification code and
// commits atomically. The code is returned to the caller: the provider
// reads it back to the requester on arrival.
func (h AcceptRequestCommandHandler) Handle(
	ctx context.Context, cmd AcceptRequestCommand,
) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	if err := h.policy.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	requestRepo := uow.RequestRepository()
	providerRepo := uow.ProviderRepository()
	requesterRepo := uow.RequesterRepository()

	mechanic, err := providerRepo.Get(ctx, cmd.ProviderID())
	if err != nil {
		return "", err
	}
	if err = mechanic.EnsureCanAccept(); err != nil {
		return "", err
	}

	serviceRequest, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return "", err
	}

	now := time.Now()
	outcome, err := h.policy.Evaluate(serviceRequest, now)
	if err != nil {
		return "", err
	}
	if outcome == services.OutcomeTimedOut {
		return "", h.commitTimeout(ctx, uow, serviceRequest)
	}

	code := newVerificationCode()
	if err = serviceRequest.Accept(cmd.ProviderID(), code, now); err != nil {
		return "", err
	}
	if err = mechanic.AssignRequest(serviceRequest.ID()); err != nil {
		return "", err
	}

	owner, err := requesterRepo.Get(ctx, serviceRequest.RequesterID())
	if err != nil {
		return "", err
	}
	if err = owner.BindRequest(serviceRequest.ID()); err != nil {
		return "", err
	}

	if err = requestRepo.Update(ctx, serviceRequest); err != nil {
		return "", err
	}
	if err = providerRepo.Update(ctx, mechanic); err != nil {
		return "", err
	}
	if err = requesterRepo.Update(ctx, owner); err != nil {
		return "", err
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}

	return code, nil
}

// commitTimeout persists a timeout discovered on the accept path: the
// request's TIMEOUT status and the requester's freed active slot are
// committed, and the accept itself fails with the transition's Conflict.
func (h AcceptRequestCommandHandler) commitTimeout(
	ctx context.Context, uow UoW, serviceRequest *request.Request,
) error {
	if err := uow.RequestRepository().Update(ctx, serviceRequest); err != nil {
		return err
	}

	requesterRepo := uow.RequesterRepository()
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

	return errs.NewConflictError("request", serviceRequest.Status().String())
}

// newVerificationCode returns a random six-digit numeric code.
func newVerificationCode() string {
	return strconv.Itoa(100000 + rand.IntN(900000))
}

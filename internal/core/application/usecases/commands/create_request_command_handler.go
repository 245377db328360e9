package commands

import (
	"context"
	"time"

	"roadside/internal/core/domain/model/request"
	"roadside/internal/core/domain/services"
)

// CreateRequestCommandHandler handles the business logic for opening a
// service request. The requester check and the request creation run in one
// transaction: a requester with an open request cannot slip a second one in
// between the check and the write.
//
// Example:
//
//	handler := NewCreateRequestCommandHandler(uowFactory, policy)
//	cmd, _ := NewCreateRequestCommand(requestID, requesterID,
//	    kernel.VehicleCar, kernel.ServiceBattery, "flat battery", location)
//
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrConflict) {
//	    // the requester already has an open request
//	}
type CreateRequestCommandHandler struct {
	uowFactory UoWFactory
	policy     services.EscalationPolicy
}

// NewCreateRequestCommandHandler creates a handler for request creation.
// The escalation policy supplies the initial search radius and the first
// escalation deadline.
func NewCreateRequestCommandHandler(
	uowFactory UoWFactory, policy services.EscalationPolicy,
) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
	}
}

// Handle processes the request creation command. Loads the requester, binds
// the new request id (failing with Conflict when another request is already
// active), creates the request in SEARCHING status and persists both records
// atomically.
func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) error {
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

	requesterRepo := uow.RequesterRepository()
	requestRepo := uow.RequestRepository()

	owner, err := requesterRepo.Get(ctx, cmd.RequesterID())
	if err != nil {
		return err
	}

	if err = owner.BindRequest(cmd.RequestID()); err != nil {
		return err
	}

	now := time.Now()
	newRequest, err := request.NewRequest(
		cmd.RequestID(),
		cmd.RequesterID(),
		cmd.Vehicle(),
		cmd.Service(),
		cmd.Description(),
		cmd.Location(),
		h.policy.InitialRadiusKm(),
		h.policy.FirstDeadline(now),
		now,
	)
	if err != nil {
		return err
	}

	if err = requestRepo.Add(ctx, newRequest); err != nil {
		return err
	}

	if err = requesterRepo.Update(ctx, owner); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

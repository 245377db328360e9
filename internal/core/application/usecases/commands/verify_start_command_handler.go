package commands

import (
	"context"
	"time"
)

// VerifyStartCommandHandler moves a request from ACCEPTED to IN_PROGRESS
// after the requester submits the correct verification code. A single-record
// write; the code check and the transition both live on the aggregate.
type VerifyStartCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewVerifyStartCommandHandler creates a handler for start verification.
func NewVerifyStartCommandHandler(uowFactory RequestUoWFactory) VerifyStartCommandHandler {
	return VerifyStartCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the verification. A wrong code fails with InvalidInput,
// a repeat verification with Conflict; neither changes the record.
func (h VerifyStartCommandHandler) Handle(ctx context.Context, cmd VerifyStartCommand) error {
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

	serviceRequest, err := requestRepo.Get(ctx, cmd.RequestID())
	if err != nil {
		return err
	}

	if err = serviceRequest.VerifyStart(cmd.SubmittedCode(), time.Now()); err != nil {
		return err
	}

	if err = requestRepo.Update(ctx, serviceRequest); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

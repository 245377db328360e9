package commands

import (
	"context"
)

// SubmitFeedbackCommandHandler records the one-time rating and feedback for
// a completed request. Single-record write; all preconditions (completed
// status, no prior feedback) live on the aggregate.
type SubmitFeedbackCommandHandler struct {
	uowFactory RequestUoWFactory
}

// NewSubmitFeedbackCommandHandler creates a handler for feedback submission.
func NewSubmitFeedbackCommandHandler(uowFactory RequestUoWFactory) SubmitFeedbackCommandHandler {
	return SubmitFeedbackCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the feedback submission.
func (h SubmitFeedbackCommandHandler) Handle(ctx context.Context, cmd SubmitFeedbackCommand) error {
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

	if err = serviceRequest.SubmitFeedback(cmd.Rating(), cmd.Feedback()); err != nil {
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

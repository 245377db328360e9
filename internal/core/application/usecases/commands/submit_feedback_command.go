package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/request"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var ErrSubmitFeedbackCommandIsNotConstructed = errors.New(
	"SubmitFeedbackCommand must be created via NewSubmitFeedbackCommand constructor",
)

// SubmitFeedbackCommand represents the requester rating a completed service.
type SubmitFeedbackCommand struct { //nolint:recvcheck //using for validation
	requestID kernel.UUID
	rating    int
	feedback  string

	guard guard.ConstructorGuard
}

// NewSubmitFeedbackCommand creates a command to record feedback. The rating
// must already be in range here so malformed input never reaches a
// transaction; the feedback text may be empty.
func NewSubmitFeedbackCommand(requestID kernel.UUID, rating int, feedback string) (SubmitFeedbackCommand, error) {
	command := SubmitFeedbackCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setRating(rating),
	); err != nil {
		return SubmitFeedbackCommand{}, err
	}

	command.feedback = feedback
	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SubmitFeedbackCommand) Validate() error {
	return c.guard.Validate(ErrSubmitFeedbackCommandIsNotConstructed)
}

// RequestID returns the request being rated.
func (c SubmitFeedbackCommand) RequestID() kernel.UUID {
	return c.requestID
}

// Rating returns the submitted rating.
func (c SubmitFeedbackCommand) Rating() int {
	return c.rating
}

// Feedback returns the submitted free-text feedback, possibly empty.
func (c SubmitFeedbackCommand) Feedback() string {
	return c.feedback
}

func (c *SubmitFeedbackCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *SubmitFeedbackCommand) setRating(rating int) error {
	if rating < request.RatingMin || rating > request.RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, request.RatingMin, request.RatingMax)
	}

	c.rating = rating
	return nil
}

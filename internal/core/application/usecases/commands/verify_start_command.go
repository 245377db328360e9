package commands

import (
	"errors"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var ErrVerifyStartCommandIsNotConstructed = errors.New(
	"VerifyStartCommand must be created via NewVerifyStartCommand constructor",
)

// VerifyStartCommand represents the requester confirming the provider's
// identity by submitting the verification code, which starts the service.
type VerifyStartCommand struct { //nolint:recvcheck //using for validation
	requestID     kernel.UUID
	submittedCode string

	guard guard.ConstructorGuard
}

// NewVerifyStartCommand creates a command to verify the service start.
// The code comparison itself happens in the aggregate; here only presence
// is required.
func NewVerifyStartCommand(requestID kernel.UUID, submittedCode string) (VerifyStartCommand, error) {
	command := VerifyStartCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setRequestID(requestID),
		command.setSubmittedCode(submittedCode),
	); err != nil {
		return VerifyStartCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c VerifyStartCommand) Validate() error {
	return c.guard.Validate(ErrVerifyStartCommandIsNotConstructed)
}

// RequestID returns the request being started.
func (c VerifyStartCommand) RequestID() kernel.UUID {
	return c.requestID
}

// SubmittedCode returns the code the requester entered.
func (c VerifyStartCommand) SubmittedCode() string {
	return c.submittedCode
}

func (c *VerifyStartCommand) setRequestID(requestID kernel.UUID) error {
	if err := requestID.Validate(); err != nil {
		return err
	}

	c.requestID = requestID
	return nil
}

func (c *VerifyStartCommand) setSubmittedCode(submittedCode string) error {
	if submittedCode == "" {
		return errs.NewValueIsRequiredError("verification code")
	}

	c.submittedCode = submittedCode
	return nil
}

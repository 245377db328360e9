package request

import (
	"roadside/internal/pkg/errs"
)

// Status is the lifecycle state of a service request. It implements a state
// machine with defined transitions:
//
//	SEARCHING ──> ACCEPTED ──> IN_PROGRESS ──> COMPLETED
//	    │             │
//	    │             └──> CANCELLED
//	    ├──> CANCELLED
//	    └──> TIMEOUT
//
// COMPLETED, CANCELLED and TIMEOUT are terminal; no transition leaves them.
// Every guarded transition that fails returns a ConflictError carrying the
// current status so callers can surface it to the end user.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusSearching is the initial status: the request is visible to
	// provider match queries and subject to radius escalation.
	StatusSearching

	// StatusAccepted means a provider committed to the request and a
	// verification code was generated; the code has not been verified yet.
	StatusAccepted

	// StatusInProgress means the requester verified the code and service is
	// physically underway. Cancellation is no longer allowed.
	StatusInProgress

	// StatusCompleted is the terminal status of a successfully served request.
	StatusCompleted

	// StatusCancelled is the terminal status of a request withdrawn by its
	// requester before service started.
	StatusCancelled

	// StatusTimedOut is the terminal status reached when the escalation
	// policy exhausted every radius step without an acceptance.
	StatusTimedOut
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusSearching:  "SEARCHING",
		StatusAccepted:   "ACCEPTED",
		StatusInProgress: "IN_PROGRESS",
		StatusCompleted:  "COMPLETED",
		StatusCancelled:  "CANCELLED",
		StatusTimedOut:   "TIMEOUT",
	}
}

// Validate checks that the Status is a member of the enumeration.
// StatusUnknown and any other value are invalid.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidError("status")
	}
	return nil
}

// String returns the wire name of the status, or "UNKNOWN" for invalid values.
func (s Status) String() string {
	if name, ok := getStatusStrings()[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// IsTerminal reports whether no further transition can leave this status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusTimedOut
}

// Accept transitions SEARCHING to ACCEPTED.
// Any other current status yields a ConflictError.
func (s Status) Accept() (Status, error) {
	if s != StatusSearching {
		return StatusUnknown, errs.NewConflictError("request", s.String())
	}
	return StatusAccepted, nil
}

// Start transitions ACCEPTED to IN_PROGRESS.
// Any other current status yields a ConflictError.
func (s Status) Start() (Status, error) {
	if s != StatusAccepted {
		return StatusUnknown, errs.NewConflictError("request", s.String())
	}
	return StatusInProgress, nil
}

// Complete transitions IN_PROGRESS to COMPLETED.
// Any other current status yields a ConflictError.
func (s Status) Complete() (Status, error) {
	if s != StatusInProgress {
		return StatusUnknown, errs.NewConflictError("request", s.String())
	}
	return StatusCompleted, nil
}

// Cancel transitions SEARCHING or ACCEPTED to CANCELLED. Cancellation is
// forbidden once service is underway or the request is already terminal.
func (s Status) Cancel() (Status, error) {
	if s != StatusSearching && s != StatusAccepted {
		return StatusUnknown, errs.NewConflictError("request", s.String())
	}
	return StatusCancelled, nil
}

// TimeOut transitions SEARCHING to TIMEOUT. Only the escalation policy uses
// this transition; it is never triggered by a user action.
func (s Status) TimeOut() (Status, error) {
	if s != StatusSearching {
		return StatusUnknown, errs.NewConflictError("request", s.String())
	}
	return StatusTimedOut, nil
}

package request

import (
	"errors"
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

var (
	// ErrRequestIsNotConstructed is returned when a Request instance was not
	// created through NewRequest or RestoreRequest.
	ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest or RestoreRequest")

	// ErrCodeAlreadyVerified is the cause attached to the ConflictError
	// returned when VerifyStart is called after the code was already verified.
	ErrCodeAlreadyVerified = errors.New("verification code already verified")

	// ErrFeedbackAlreadySubmitted is the cause attached to the ConflictError
	// returned on a second feedback submission.
	ErrFeedbackAlreadySubmitted = errors.New("feedback already submitted")
)

const (
	// RatingMin is the lowest accepted service rating.
	RatingMin = 1
	// RatingMax is the highest accepted service rating.
	RatingMax = 5
)

// Request is the aggregate root for a single service episode: one vehicle
// owner asking for one kind of roadside help at one location. It is created
// in SEARCHING status and never deleted; terminal transitions only close it.
//
// The aggregate owns its status and radius fields. Provider and requester
// bookkeeping (active-request ids, availability) lives on those aggregates
// and is coordinated by the command handlers, transactionally where a
// transition touches more than one record.
//
// Invariants:
//   - status transitions follow the Status state machine only
//   - a verification code exists only from acceptance until verification
//   - rating and feedback are recorded at most once, only after completion
//   - the search radius never shrinks and never changes after SEARCHING ends
type Request struct {
	id          kernel.UUID
	requesterID kernel.UUID
	providerID  *kernel.UUID

	vehicle     kernel.VehicleCategory
	service     kernel.ServiceCategory
	description string

	requesterLocation kernel.GeoPoint
	providerLocation  *kernel.GeoPoint

	searchRadiusKm     float64
	radiusExpansions   int
	escalationDeadline time.Time

	verificationCode *string
	codeVerified     bool

	rating   *int
	feedback *string

	status      Status
	cancelledBy *kernel.UUID

	createdAt   time.Time
	acceptedAt  *time.Time
	startedAt   *time.Time
	completedAt *time.Time
	cancelledAt *time.Time
	timedOutAt  *time.Time

	version int
	guard   guard.ConstructorGuard
}

// NewRequest creates a service request in SEARCHING status. The initial
// search radius and the first escalation deadline come from the escalation
// policy configuration; the aggregate itself has no opinion on their values
// beyond basic validity.
func NewRequest(
	id kernel.UUID,
	requesterID kernel.UUID,
	vehicle kernel.VehicleCategory,
	service kernel.ServiceCategory,
	description string,
	requesterLocation kernel.GeoPoint,
	searchRadiusKm float64,
	escalationDeadline time.Time,
	now time.Time,
) (*Request, error) {
	if err := errors.Join(
		id.Validate(),
		requesterID.Validate(),
		vehicle.Validate(),
		service.Validate(),
		requesterLocation.Validate(),
	); err != nil {
		return nil, err
	}

	if searchRadiusKm <= 0 {
		return nil, errs.NewValueIsInvalidError("search radius")
	}
	if escalationDeadline.IsZero() {
		return nil, errs.NewValueIsRequiredError("escalation deadline")
	}

	return &Request{
		id:                 id,
		requesterID:        requesterID,
		vehicle:            vehicle,
		service:            service,
		description:        description,
		requesterLocation:  requesterLocation,
		searchRadiusKm:     searchRadiusKm,
		escalationDeadline: escalationDeadline,
		status:             StatusSearching,
		createdAt:          now,
		version:            1,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// RestoreRequestParams carries the full persisted state of a request for
// reconstruction from storage.
type RestoreRequestParams struct {
	ID                 kernel.UUID
	RequesterID        kernel.UUID
	ProviderID         *kernel.UUID
	Vehicle            kernel.VehicleCategory
	Service            kernel.ServiceCategory
	Description        string
	RequesterLocation  kernel.GeoPoint
	ProviderLocation   *kernel.GeoPoint
	SearchRadiusKm     float64
	RadiusExpansions   int
	EscalationDeadline time.Time
	VerificationCode   *string
	CodeVerified       bool
	Rating             *int
	Feedback           *string
	Status             Status
	CancelledBy        *kernel.UUID
	CreatedAt          time.Time
	AcceptedAt         *time.Time
	StartedAt          *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	TimedOutAt         *time.Time
	Version            int
}

// RestoreRequest reconstructs a Request aggregate from persistent storage.
// Unlike NewRequest it accepts any valid status, but still validates the
// identity, category and location invariants.
func RestoreRequest(p RestoreRequestParams) (*Request, error) {
	if err := errors.Join(
		p.ID.Validate(),
		p.RequesterID.Validate(),
		p.Vehicle.Validate(),
		p.Service.Validate(),
		p.RequesterLocation.Validate(),
		p.Status.Validate(),
	); err != nil {
		return nil, err
	}

	if p.ProviderID != nil {
		if err := p.ProviderID.Validate(); err != nil {
			return nil, err
		}
	}
	if p.Version < 1 {
		return nil, errs.NewVersionIsInvalidErrorWithCause("request")
	}

	return &Request{
		id:                 p.ID,
		requesterID:        p.RequesterID,
		providerID:         p.ProviderID,
		vehicle:            p.Vehicle,
		service:            p.Service,
		description:        p.Description,
		requesterLocation:  p.RequesterLocation,
		providerLocation:   p.ProviderLocation,
		searchRadiusKm:     p.SearchRadiusKm,
		radiusExpansions:   p.RadiusExpansions,
		escalationDeadline: p.EscalationDeadline,
		verificationCode:   p.VerificationCode,
		codeVerified:       p.CodeVerified,
		rating:             p.Rating,
		feedback:           p.Feedback,
		status:             p.Status,
		cancelledBy:        p.CancelledBy,
		createdAt:          p.CreatedAt,
		acceptedAt:         p.AcceptedAt,
		startedAt:          p.StartedAt,
		completedAt:        p.CompletedAt,
		cancelledAt:        p.CancelledAt,
		timedOutAt:         p.TimedOutAt,
		version:            p.Version,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Request was created through a constructor.
func (r *Request) Validate() error {
	if r == nil {
		return ErrRequestIsNotConstructed
	}
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// IsEqual compares two requests by identity.
func (r *Request) IsEqual(other *Request) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// Accept moves the request from SEARCHING to ACCEPTED on behalf of a
// provider, recording the provider id and a fresh, unverified verification
// code. The caller (the assignment coordinator) is responsible for checking
// provider eligibility and for committing the provider and requester updates
// in the same transaction.
func (r *Request) Accept(providerID kernel.UUID, verificationCode string, now time.Time) error {
	if err := providerID.Validate(); err != nil {
		return err
	}
	if verificationCode == "" {
		return errs.NewValueIsRequiredError("verification code")
	}

	newStatus, err := r.status.Accept()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.providerID = &providerID
	r.verificationCode = &verificationCode
	r.codeVerified = false
	r.acceptedAt = &now
	return nil
}

// VerifyStart moves the request from ACCEPTED to IN_PROGRESS when the
// requester submits the correct verification code. A second verification
// attempt fails with a ConflictError caused by ErrCodeAlreadyVerified; a
// wrong code fails with a ValueIsInvalidError. The comparison is exact.
func (r *Request) VerifyStart(submittedCode string, now time.Time) error {
	if r.codeVerified {
		return errs.NewConflictErrorWithCause("request", r.status.String(), ErrCodeAlreadyVerified)
	}

	newStatus, err := r.status.Start()
	if err != nil {
		return err
	}

	if r.verificationCode == nil || submittedCode != *r.verificationCode {
		return errs.NewValueIsInvalidError("verification code")
	}

	r.status = newStatus
	r.codeVerified = true
	r.startedAt = &now
	return nil
}

// Complete moves the request from IN_PROGRESS to COMPLETED. Only the original
// requester may complete; anyone else gets a NotEligibleError.
func (r *Request) Complete(callerID kernel.UUID, now time.Time) error {
	if !r.requesterID.IsEqual(callerID) {
		return errs.NewNotEligibleError("requester", "is not the owner of this request")
	}

	newStatus, err := r.status.Complete()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.completedAt = &now
	return nil
}

// Cancel moves the request from SEARCHING or ACCEPTED to CANCELLED and
// records who cancelled. Cancellation is forbidden once service is underway
// (IN_PROGRESS) and on terminal statuses. Only the original requester may
// cancel.
func (r *Request) Cancel(callerID kernel.UUID, now time.Time) error {
	if !r.requesterID.IsEqual(callerID) {
		return errs.NewNotEligibleError("requester", "is not the owner of this request")
	}

	newStatus, err := r.status.Cancel()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.cancelledBy = &callerID
	r.cancelledAt = &now
	return nil
}

// MarkTimedOut moves the request from SEARCHING to TIMEOUT. This transition
// is reserved for the escalation policy; no user action reaches it.
func (r *Request) MarkTimedOut(now time.Time) error {
	newStatus, err := r.status.TimeOut()
	if err != nil {
		return err
	}

	r.status = newStatus
	r.timedOutAt = &now
	return nil
}

// ExpandRadius widens the search radius to the next escalation step and
// pushes the deadline forward. The radius is monotonic: a step that does not
// strictly grow it is rejected.
func (r *Request) ExpandRadius(newRadiusKm float64, newDeadline time.Time) error {
	if r.status != StatusSearching {
		return errs.NewConflictError("request", r.status.String())
	}
	if newRadiusKm <= r.searchRadiusKm {
		return errs.NewValueIsInvalidError("search radius")
	}

	r.searchRadiusKm = newRadiusKm
	r.radiusExpansions++
	r.escalationDeadline = newDeadline
	return nil
}

// UpdateProviderLocation records the assigned provider's position snapshot.
// Only the assigned provider may report, and only while the request is
// ACCEPTED or IN_PROGRESS.
func (r *Request) UpdateProviderLocation(providerID kernel.UUID, location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if r.providerID == nil || !r.providerID.IsEqual(providerID) {
		return errs.NewNotEligibleError("provider", "is not assigned to this request")
	}
	if r.status != StatusAccepted && r.status != StatusInProgress {
		return errs.NewConflictError("request", r.status.String())
	}

	r.providerLocation = &location
	return nil
}

// SubmitFeedback records the one-time rating and free-text feedback for a
// completed request. Rating must be an integer in [RatingMin, RatingMax];
// a second submission fails with a ConflictError caused by
// ErrFeedbackAlreadySubmitted.
func (r *Request) SubmitFeedback(rating int, feedback string) error {
	if r.status != StatusCompleted {
		return errs.NewConflictError("request", r.status.String())
	}
	if r.rating != nil {
		return errs.NewConflictErrorWithCause("request", r.status.String(), ErrFeedbackAlreadySubmitted)
	}
	if rating < RatingMin || rating > RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", rating, RatingMin, RatingMax)
	}

	r.rating = &rating
	r.feedback = &feedback
	return nil
}

// ID returns the request's unique identifier.
func (r *Request) ID() kernel.UUID { return r.id }

// RequesterID returns the identity of the requester who created the request.
func (r *Request) RequesterID() kernel.UUID { return r.requesterID }

// ProviderID returns the assigned provider's id, or nil while unassigned.
func (r *Request) ProviderID() *kernel.UUID { return r.providerID }

// VehicleCategory returns the request's vehicle category.
func (r *Request) VehicleCategory() kernel.VehicleCategory { return r.vehicle }

// ServiceCategory returns the request's service category.
func (r *Request) ServiceCategory() kernel.ServiceCategory { return r.service }

// Description returns the requester's free-text problem description.
func (r *Request) Description() string { return r.description }

// RequesterLocation returns where help is needed.
func (r *Request) RequesterLocation() kernel.GeoPoint { return r.requesterLocation }

// ProviderLocation returns the assigned provider's last reported position,
// or nil if none was reported.
func (r *Request) ProviderLocation() *kernel.GeoPoint { return r.providerLocation }

// SearchRadiusKm returns the current search radius in kilometers.
func (r *Request) SearchRadiusKm() float64 { return r.searchRadiusKm }

// RadiusExpansions returns how many escalation steps have been applied.
func (r *Request) RadiusExpansions() int { return r.radiusExpansions }

// EscalationDeadline returns when the next escalation check is due.
func (r *Request) EscalationDeadline() time.Time { return r.escalationDeadline }

// VerificationCode returns the pending verification code, or nil.
func (r *Request) VerificationCode() *string { return r.verificationCode }

// CodeVerified reports whether the verification code has been verified.
func (r *Request) CodeVerified() bool { return r.codeVerified }

// Rating returns the recorded rating, or nil if feedback was never submitted.
func (r *Request) Rating() *int { return r.rating }

// Feedback returns the recorded feedback text, or nil.
func (r *Request) Feedback() *string { return r.feedback }

// Status returns the current lifecycle status.
func (r *Request) Status() Status { return r.status }

// CancelledBy returns the identity that cancelled the request, or nil.
func (r *Request) CancelledBy() *kernel.UUID { return r.cancelledBy }

// CreatedAt returns the creation timestamp.
func (r *Request) CreatedAt() time.Time { return r.createdAt }

// AcceptedAt returns the acceptance timestamp, or nil.
func (r *Request) AcceptedAt() *time.Time { return r.acceptedAt }

// StartedAt returns the service start timestamp, or nil.
func (r *Request) StartedAt() *time.Time { return r.startedAt }

// CompletedAt returns the completion timestamp, or nil.
func (r *Request) CompletedAt() *time.Time { return r.completedAt }

// CancelledAt returns the cancellation timestamp, or nil.
func (r *Request) CancelledAt() *time.Time { return r.cancelledAt }

// TimedOutAt returns the timeout timestamp, or nil.
func (r *Request) TimedOutAt() *time.Time { return r.timedOutAt }

// Version returns the optimistic-concurrency version of the persisted state
// this aggregate was restored from.
func (r *Request) Version() int { return r.version }

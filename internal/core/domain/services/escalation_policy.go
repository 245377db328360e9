package services

import (
	"errors"
	"time"

	"roadside/internal/core/domain/model/request"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

// ErrEscalationPolicyIsNotConstructed is returned when an EscalationPolicy
// was not created through NewEscalationPolicy.
var ErrEscalationPolicyIsNotConstructed = errors.New("EscalationPolicy must be created via NewEscalationPolicy")

// EscalationOutcome describes what Evaluate decided for a request.
type EscalationOutcome int

const (
	// OutcomeNone means the request's deadline has not passed; nothing changed.
	OutcomeNone EscalationOutcome = iota
	// OutcomeEscalated means the search radius was widened one step.
	OutcomeEscalated
	// OutcomeTimedOut means all steps were exhausted and the request moved
	// to TIMEOUT.
	OutcomeTimedOut
)

// EscalationPolicy is a domain service that widens a searching request's
// radius on a fixed schedule and times it out once every step is spent.
//
// The policy is deliberately lazy: nothing fires on a timer inside the
// domain. Evaluate is called whenever someone looks at a request (a status
// read, a match scan, a background sweep) and applies at most one action per
// check, rescheduling the next deadline one interval from the check time. A
// request left untouched for several intervals still walks the ladder one
// rung per check, so every radius gets its turn to be matched against.
//
// Configuration rules, enforced at construction:
//   - radius steps are strictly increasing and start the ladder the request
//     was created on
//   - max expansions cannot exceed the number of remaining steps
//   - the escalation interval is positive
//
// Example usage:
//
//	policy, _ := NewEscalationPolicy([]float64{3, 5, 8, 12}, 3, 30*time.Second)
//	outcome, err := policy.Evaluate(req, time.Now())
//	if outcome != OutcomeNone {
//	    // the caller persists the mutated request
//	}
type EscalationPolicy struct {
	radiusStepsKm []float64
	maxExpansions int
	interval      time.Duration
	guard         guard.ConstructorGuard
}

// NewEscalationPolicy creates an escalation policy from configuration.
//
// Parameters:
//   - radiusStepsKm: the radius ladder in kilometers, strictly increasing;
//     index 0 is the radius new requests start with
//   - maxExpansions: how many escalation steps a request may take, at most
//     len(radiusStepsKm)-1
//   - interval: time between escalation steps
func NewEscalationPolicy(radiusStepsKm []float64, maxExpansions int, interval time.Duration) (EscalationPolicy, error) {
	if len(radiusStepsKm) < 2 {
		return EscalationPolicy{}, errs.NewValueIsInvalidError("radius steps")
	}
	for i, step := range radiusStepsKm {
		if step <= 0 {
			return EscalationPolicy{}, errs.NewValueIsInvalidError("radius steps")
		}
		if i > 0 && step <= radiusStepsKm[i-1] {
			return EscalationPolicy{}, errs.NewValueIsInvalidError("radius steps")
		}
	}
	if maxExpansions < 1 || maxExpansions > len(radiusStepsKm)-1 {
		return EscalationPolicy{}, errs.NewValueIsOutOfRangeError(
			"max expansions", maxExpansions, 1, len(radiusStepsKm)-1)
	}
	if interval <= 0 {
		return EscalationPolicy{}, errs.NewValueIsInvalidError("escalation interval")
	}

	steps := make([]float64, len(radiusStepsKm))
	copy(steps, radiusStepsKm)

	return EscalationPolicy{
		radiusStepsKm: steps,
		maxExpansions: maxExpansions,
		interval:      interval,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the policy was created through the constructor.
func (p EscalationPolicy) Validate() error {
	return p.guard.Validate(ErrEscalationPolicyIsNotConstructed)
}

// InitialRadiusKm returns the radius new requests start searching with.
func (p EscalationPolicy) InitialRadiusKm() float64 {
	return p.radiusStepsKm[0]
}

// Interval returns the time between escalation steps.
func (p EscalationPolicy) Interval() time.Duration {
	return p.interval
}

// FirstDeadline returns the escalation deadline for a request created at now.
func (p EscalationPolicy) FirstDeadline(now time.Time) time.Time {
	return now.Add(p.interval)
}

// Evaluate checks one request against the clock and applies at most one
// action.
//
// When the request is SEARCHING and its deadline has passed, the radius
// advances a single step and the next deadline is set one interval from now;
// once the expansion budget is spent, the next overdue check marks the
// request TIMEOUT instead. Requests in any other status, or checked before
// their deadline, are untouched.
//
// Returns:
//   - EscalationOutcome: the action applied (TimedOut, Escalated or None)
//   - error: validation errors, or transition errors from the aggregate
//
// The caller persists the request iff the outcome is not OutcomeNone.
func (p EscalationPolicy) Evaluate(r *request.Request, now time.Time) (EscalationOutcome, error) {
	if err := p.Validate(); err != nil {
		return OutcomeNone, err
	}
	if err := r.Validate(); err != nil {
		return OutcomeNone, err
	}

	if r.Status() != request.StatusSearching || now.Before(r.EscalationDeadline()) {
		return OutcomeNone, nil
	}

	if r.RadiusExpansions() >= p.maxExpansions {
		if err := r.MarkTimedOut(now); err != nil {
			return OutcomeNone, err
		}
		return OutcomeTimedOut, nil
	}

	nextRadius := p.radiusStepsKm[r.RadiusExpansions()+1]
	if err := r.ExpandRadius(nextRadius, now.Add(p.interval)); err != nil {
		return OutcomeNone, err
	}

	return OutcomeEscalated, nil
}

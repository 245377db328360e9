package queries

import (
	"errors"
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var (
	ErrGetRequestStatusQueryIsNotConstructed = errors.New(
		"GetRequestStatusQuery must be created via NewGetRequestStatusQuery constructor",
	)
)

// GetRequestStatusQuery retrieves the live view of a single service request:
// its lifecycle status, the current search parameters, the assigned provider
// and the actions available to the requester in that status.
//
// Example:
//
//	query, err := queries.NewGetRequestStatusQuery(requestID)
//	if err != nil {
//	    return err
//	}
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get request status: %w", err)
//	}
//
//	fmt.Printf("Request %s is %s within %.0f km\n",
//	    status.ID, status.Status, status.SearchRadiusKm)
type GetRequestStatusQuery struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRequestStatusQuery creates a query for the given request id.
func NewGetRequestStatusQuery(requestID kernel.UUID) (GetRequestStatusQuery, error) {
	if err := requestID.Validate(); err != nil {
		return GetRequestStatusQuery{}, err
	}

	return GetRequestStatusQuery{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RequestID returns the id of the request being inspected.
func (q GetRequestStatusQuery) RequestID() kernel.UUID {
	return q.requestID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRequestStatusQueryIsNotConstructed if validation fails.
func (q GetRequestStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetRequestStatusQueryIsNotConstructed)
}

// GetRequestStatusQueryResponse represents the status view of a request.
// The Allow/Can flags tell the caller which lifecycle operations make sense
// in the current status, so clients need no knowledge of the state machine.
type GetRequestStatusQueryResponse struct {
	ID     kernel.UUID
	Status string

	SearchRadiusKm     float64
	RadiusExpansions   int
	EscalationDeadline time.Time

	ProviderID       *kernel.UUID
	ProviderLocation *kernel.GeoPoint

	// VerificationCode is populated only while the request is ACCEPTED and
	// the code has not been verified yet.
	CodeVerified     bool
	VerificationCode *string
	Rating           *int
	Feedback         *string

	AllowVerify bool
	CanCancel   bool
	CanComplete bool

	CreatedAt time.Time
}

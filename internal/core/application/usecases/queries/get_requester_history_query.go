package queries

import (
	"errors"
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var (
	ErrGetRequesterHistoryQueryIsNotConstructed = errors.New(
		"GetRequesterHistoryQuery must be created via NewGetRequesterHistoryQuery constructor",
	)
)

// GetRequesterHistoryQuery retrieves every request a requester has opened,
// newest first. Used for the requester's history screen.
//
// Example:
//
//	query, err := queries.NewGetRequesterHistoryQuery(requesterID)
//	if err != nil {
//	    return err
//	}
//
//	history, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get requester history: %w", err)
//	}
//
//	fmt.Printf("Requester has %d past requests\n", len(history))
type GetRequesterHistoryQuery struct {
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetRequesterHistoryQuery creates a query for the given requester id.
func NewGetRequesterHistoryQuery(requesterID kernel.UUID) (GetRequesterHistoryQuery, error) {
	if err := requesterID.Validate(); err != nil {
		return GetRequesterHistoryQuery{}, err
	}

	return GetRequesterHistoryQuery{
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RequesterID returns the id of the requester whose history is requested.
func (q GetRequesterHistoryQuery) RequesterID() kernel.UUID {
	return q.requesterID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetRequesterHistoryQueryIsNotConstructed if validation fails.
func (q GetRequesterHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetRequesterHistoryQueryIsNotConstructed)
}

// GetRequesterHistoryQueryResponse represents one request in a requester's
// history.
type GetRequesterHistoryQueryResponse struct {
	ID              kernel.UUID
	Status          string
	VehicleCategory string
	ServiceCategory string
	Description     string
	Rating          *int
	CreatedAt       time.Time
	CompletedAt     *time.Time
}

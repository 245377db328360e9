package queries

import (
	"errors"
	"time"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/guard"
)

var (
	ErrGetProviderHistoryQueryIsNotConstructed = errors.New(
		"GetProviderHistoryQuery must be created via NewGetProviderHistoryQuery constructor",
	)
)

// GetProviderHistoryQuery retrieves every request a provider has worked on,
// newest first. Ratings submitted by requesters are included so the
// provider's track record can be shown.
type GetProviderHistoryQuery struct {
	providerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetProviderHistoryQuery creates a query for the given provider id.
func NewGetProviderHistoryQuery(providerID kernel.UUID) (GetProviderHistoryQuery, error) {
	if err := providerID.Validate(); err != nil {
		return GetProviderHistoryQuery{}, err
	}

	return GetProviderHistoryQuery{
		providerID: providerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// ProviderID returns the id of the provider whose history is requested.
func (q GetProviderHistoryQuery) ProviderID() kernel.UUID {
	return q.providerID
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetProviderHistoryQueryIsNotConstructed if validation fails.
func (q GetProviderHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetProviderHistoryQueryIsNotConstructed)
}

// GetProviderHistoryQueryResponse represents one request in a provider's
// history.
type GetProviderHistoryQueryResponse struct {
	ID              kernel.UUID
	Status          string
	VehicleCategory string
	ServiceCategory string
	Rating          *int
	Feedback        *string
	AcceptedAt      *time.Time
	CompletedAt     *time.Time
}

package ports

import (
	"context"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/requester"
)

// RequesterRepository defines the persistence contract for requester aggregates.
type RequesterRepository interface {
	// Add persists a new requester aggregate to storage.
	Add(ctx context.Context, aggregate *requester.Requester) error

	// Update persists changes to an existing requester aggregate, conditional
	// on the aggregate's version like RequestRepository.Update.
	Update(ctx context.Context, aggregate *requester.Requester) error

	// Get retrieves a requester aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*requester.Requester, error)
}

// Package ports defines repository interfaces for the dispatch domain.
// These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/request"
)

// RequestRepository defines the persistence contract for request aggregates.
type RequestRepository interface {
	// Add persists a new request aggregate to storage.
	// The request must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *request.Request) error

	// Update persists changes to an existing request aggregate. The write is
	// conditional on the aggregate's version: if another transaction changed
	// the request since it was read, Update fails with a ConflictError and
	// nothing is written.
	Update(ctx context.Context, aggregate *request.Request) error

	// Get retrieves a request aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*request.Request, error)

	// GetAllInSearchingStatus retrieves every request still looking for a
	// provider. Used by the match scan and the escalation sweep; the results
	// have not been through the escalation policy yet.
	GetAllInSearchingStatus(ctx context.Context) ([]*request.Request, error)
}

package ports

import (
	"context"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/provider"
)

// ProviderRepository defines the persistence contract for provider aggregates.
type ProviderRepository interface {
	// Add persists a new provider aggregate to storage.
	Add(ctx context.Context, aggregate *provider.Provider) error

	// Update persists changes to an existing provider aggregate, conditional
	// on the aggregate's version like RequestRepository.Update.
	Update(ctx context.Context, aggregate *provider.Provider) error

	// Get retrieves a provider aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*provider.Provider, error)
}

// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"

	"roadside/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// RequestRepoFactory provides access to the request repository within a
	// transaction.
	RequestRepoFactory interface {
		RequestRepository() ports.RequestRepository
	}

	// ProviderRepoFactory provides access to the provider repository within a
	// transaction.
	ProviderRepoFactory interface {
		ProviderRepository() ports.ProviderRepository
	}

	// RequesterRepoFactory provides access to the requester repository within
	// a transaction.
	RequesterRepoFactory interface {
		RequesterRepository() ports.RequesterRepository
	}

	// RequestUoW manages transactions for request-only operations.
	RequestUoW interface {
		TxManager
		RequestRepoFactory
	}

	// RequestUoWFactory creates new request unit of work instances.
	RequestUoWFactory interface {
		Create() RequestUoW
	}

	// ProviderUoW manages transactions for provider-only operations.
	ProviderUoW interface {
		TxManager
		ProviderRepoFactory
	}

	// ProviderUoWFactory creates new provider unit of work instances.
	ProviderUoWFactory interface {
		Create() ProviderUoW
	}

	// UoW manages transactions across request, provider and requester
	// aggregates. Used by the assignment path, which must write all three
	// records atomically, and by terminal transitions that release a
	// provider or requester alongside the request.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   requestRepo := uow.RequestRepository()
	//   providerRepo := uow.ProviderRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		RequestRepoFactory
		ProviderRepoFactory
		RequesterRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}
)

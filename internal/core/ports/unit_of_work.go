package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and repositories bound to the same transaction, so a
// command touching the request, provider and requester records commits all
// three or none.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// RequestRepository returns a RequestRepository bound to the current
	// transaction started by Begin().
	RequestRepository() RequestRepository

	// ProviderRepository returns a ProviderRepository bound to the current
	// transaction started by Begin().
	ProviderRepository() ProviderRepository

	// RequesterRepository returns a RequesterRepository bound to the current
	// transaction started by Begin().
	RequesterRepository() RequesterRepository
}

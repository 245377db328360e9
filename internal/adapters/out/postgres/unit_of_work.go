// Package postgres provides the GORM-based implementation of the Unit of Work
// pattern. The Unit of Work maintains a list of aggregates affected by a
// business transaction and coordinates writing out changes atomically.
//
// An accept of a service request touches three records at once: the request
// itself, the provider taking it and the requester who opened it. The unit of
// work binds all three repositories to the same database transaction so the
// assignment either commits completely or not at all.
//
// Basic usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer uow.Rollback(ctx)
//
//	if err := uow.RequestRepository().Update(ctx, serviceRequest); err != nil {
//	    return err
//	}
//	if err := uow.ProviderRepository().Update(ctx, mechanic); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance owns a single transaction; concurrent operations
// must use separate instances created by the factory. Row-version checks in
// the repositories resolve write conflicts between such transactions.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"roadside/internal/adapters/out/postgres/providerrepo"
	"roadside/internal/adapters/out/postgres/requesterrepo"
	"roadside/internal/adapters/out/postgres/requestrepo"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/ports"
)

// trackedAggregate represents an aggregate modified during the unit of work.
// Useful for implementing patterns like event sourcing or the outbox pattern.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using a GORM database
// connection. Each business operation gets a fresh unit of work instance
// with proper isolation from other concurrent operations.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. The provided database connection is shared by all instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork ready for transaction management. Each
// instance maintains its own transaction state and aggregate tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction shared by the request,
// provider and requester repositories, and tracks the aggregates modified
// within it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction. Subsequent repository
// operations execute within this transaction. Calling Begin again on an
// instance with an active transaction is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes all changes made within the current transaction. After
// commit the transaction is closed and cannot be reused.
//
// Returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards all changes made within the current transaction. After
// rollback the transaction is closed and cannot be reused.
//
// Returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

// RequestRepository returns a request repository bound to the current
// transaction if one is active, otherwise to the main connection.
func (uow *GormUnitOfWork) RequestRepository() ports.RequestRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return requestrepo.NewGormRequestRepository(db, uow)
}

// ProviderRepository returns a provider repository bound to the current
// transaction if one is active, otherwise to the main connection.
func (uow *GormUnitOfWork) ProviderRepository() ports.ProviderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return providerrepo.NewGormProviderRepository(db, uow)
}

// RequesterRepository returns a requester repository bound to the current
// transaction if one is active, otherwise to the main connection.
func (uow *GormUnitOfWork) RequesterRepository() ports.RequesterRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return requesterrepo.NewGormRequesterRepository(db, uow)
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Called by repository implementations on Add, Update and Get.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

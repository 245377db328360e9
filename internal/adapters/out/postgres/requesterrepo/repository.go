package requesterrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/requester"
	"roadside/internal/core/ports"
	"roadside/internal/pkg/errs"
)

var _ ports.RequesterRepository = (*GormRequesterRepository)(nil)

// aggregateTracker is implemented by the unit of work to keep references
// to aggregates that participate in the current transaction.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormRequesterRepository persists requester aggregates with GORM, using the
// same optimistic version check as the request repository.
type GormRequesterRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormRequesterRepository creates a repository bound to the given database
// handle (a transaction handle when created inside a unit of work).
func NewGormRequesterRepository(db *gorm.DB, tracker aggregateTracker) *GormRequesterRepository {
	return &GormRequesterRepository{db: db, tracker: tracker}
}

// Add inserts a new requester aggregate.
func (r *GormRequesterRepository) Add(ctx context.Context, aggregate *requester.Requester) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("add requester: %w", err)
	}
	return nil
}

// Update writes the aggregate back, guarded by the optimistic version check.
func (r *GormRequesterRepository) Update(ctx context.Context, aggregate *requester.Requester) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&RequesterDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return fmt.Errorf("update requester: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("requester")
	}
	return nil
}

// Get loads the requester with the given id.
func (r *GormRequesterRepository) Get(ctx context.Context, id kernel.UUID) (*requester.Requester, error) {
	var dto RequesterDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("requester", id)
		}
		return nil, fmt.Errorf("get requester: %w", err)
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

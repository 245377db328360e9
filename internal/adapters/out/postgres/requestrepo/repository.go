package requestrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/request"
	"roadside/internal/core/ports"
	"roadside/internal/pkg/errs"
)

var _ ports.RequestRepository = (*GormRequestRepository)(nil)

// aggregateTracker is implemented by the unit of work to keep references
// to aggregates that participate in the current transaction.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormRequestRepository persists request aggregates with GORM. Updates use
// an optimistic version check: the row is only written when its stored
// version matches the version the aggregate was loaded with, and the write
// bumps the version. A concurrent writer therefore loses with a version
// error instead of silently overwriting state.
type GormRequestRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormRequestRepository creates a repository bound to the given database
// handle (a transaction handle when created inside a unit of work).
func NewGormRequestRepository(db *gorm.DB, tracker aggregateTracker) *GormRequestRepository {
	return &GormRequestRepository{db: db, tracker: tracker}
}

// Add inserts a new request aggregate.
func (r *GormRequestRepository) Add(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("add request: %w", err)
	}
	return nil
}

// Update writes the aggregate back, guarded by the optimistic version check.
// Returns a version error when another transaction modified the row since
// the aggregate was loaded.
func (r *GormRequestRepository) Update(ctx context.Context, aggregate *request.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&RequestDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return fmt.Errorf("update request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("request")
	}
	return nil
}

// Get loads the request with the given id.
func (r *GormRequestRepository) Get(ctx context.Context, id kernel.UUID) (*request.Request, error) {
	var dto RequestDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("request", id)
		}
		return nil, fmt.Errorf("get request: %w", err)
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

// GetAllInSearchingStatus returns every request still looking for a provider,
// oldest first.
func (r *GormRequestRepository) GetAllInSearchingStatus(ctx context.Context) ([]*request.Request, error) {
	var dtos []RequestDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(request.StatusSearching)).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, fmt.Errorf("get searching requests: %w", err)
	}

	aggregates := make([]*request.Request, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, mapErr := toDomain(dto)
		if mapErr != nil {
			return nil, mapErr
		}
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
		aggregates = append(aggregates, aggregate)
	}
	return aggregates, nil
}

package providerrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/provider"
	"roadside/internal/core/ports"
	"roadside/internal/pkg/errs"
)

var _ ports.ProviderRepository = (*GormProviderRepository)(nil)

// aggregateTracker is implemented by the unit of work to keep references
// to aggregates that participate in the current transaction.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormProviderRepository persists provider aggregates with GORM, using the
// same optimistic version check as the request repository.
type GormProviderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// NewGormProviderRepository creates a repository bound to the given database
// handle (a transaction handle when created inside a unit of work).
func NewGormProviderRepository(db *gorm.DB, tracker aggregateTracker) *GormProviderRepository {
	return &GormProviderRepository{db: db, tracker: tracker}
}

// Add inserts a new provider aggregate.
func (r *GormProviderRepository) Add(ctx context.Context, aggregate *provider.Provider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return fmt.Errorf("add provider: %w", err)
	}
	return nil
}

// Update writes the aggregate back, guarded by the optimistic version check.
func (r *GormProviderRepository) Update(ctx context.Context, aggregate *provider.Provider) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)

	dto := fromDomain(aggregate)
	dto.Version = aggregate.Version() + 1

	result := r.db.WithContext(ctx).
		Model(&ProviderDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.Version()).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return fmt.Errorf("update provider: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidErrorWithCause("provider")
	}
	return nil
}

// Get loads the provider with the given id.
func (r *GormProviderRepository) Get(ctx context.Context, id kernel.UUID) (*provider.Provider, error) {
	var dto ProviderDTO
	err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("provider", id)
		}
		return nil, fmt.Errorf("get provider: %w", err)
	}

	aggregate, err := toDomain(dto)
	if err != nil {
		return nil, err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return aggregate, nil
}

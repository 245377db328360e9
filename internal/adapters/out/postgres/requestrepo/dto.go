// Package requestrepo provides data transfer objects and mapping functions
// for request persistence. It implements the repository pattern for the
// request aggregate, converting between domain entities and database rows.
package requestrepo

import (
	"time"

	"github.com/google/uuid"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/request"
)

// RequestDTO represents the database structure for persisting request
// aggregates. Category and status enumerations are stored as their integer
// values; the version column drives the optimistic-concurrency check on
// every update.
type RequestDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	RequesterID uuid.UUID  `gorm:"type:uuid;index"`
	ProviderID  *uuid.UUID `gorm:"type:uuid;index"`

	VehicleCategory int
	ServiceCategory int
	Description     string

	RequesterLat float64
	RequesterLng float64
	ProviderLat  *float64
	ProviderLng  *float64

	SearchRadiusKm     float64
	RadiusExpansions   int
	EscalationDeadline time.Time

	VerificationCode *string
	CodeVerified     bool

	Rating   *int
	Feedback *string

	Status      int        `gorm:"index"`
	CancelledBy *uuid.UUID `gorm:"type:uuid"`

	CreatedAt   time.Time
	AcceptedAt  *time.Time
	StartedAt   *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time
	TimedOutAt  *time.Time

	Version int
}

// TableName specifies the database table name for request entities.
func (RequestDTO) TableName() string {
	return "requests"
}

func fromDomain(aggregate *request.Request) RequestDTO {
	var providerID *uuid.UUID
	if id := aggregate.ProviderID(); id != nil {
		raw := id.Bytes()
		providerID = &raw
	}

	var providerLat, providerLng *float64
	if loc := aggregate.ProviderLocation(); loc != nil {
		lat, lng := loc.Latitude(), loc.Longitude()
		providerLat, providerLng = &lat, &lng
	}

	var cancelledBy *uuid.UUID
	if id := aggregate.CancelledBy(); id != nil {
		raw := id.Bytes()
		cancelledBy = &raw
	}

	return RequestDTO{
		ID:                 aggregate.ID().Bytes(),
		RequesterID:        aggregate.RequesterID().Bytes(),
		ProviderID:         providerID,
		VehicleCategory:    int(aggregate.VehicleCategory()),
		ServiceCategory:    int(aggregate.ServiceCategory()),
		Description:        aggregate.Description(),
		RequesterLat:       aggregate.RequesterLocation().Latitude(),
		RequesterLng:       aggregate.RequesterLocation().Longitude(),
		ProviderLat:        providerLat,
		ProviderLng:        providerLng,
		SearchRadiusKm:     aggregate.SearchRadiusKm(),
		RadiusExpansions:   aggregate.RadiusExpansions(),
		EscalationDeadline: aggregate.EscalationDeadline(),
		VerificationCode:   aggregate.VerificationCode(),
		CodeVerified:       aggregate.CodeVerified(),
		Rating:             aggregate.Rating(),
		Feedback:           aggregate.Feedback(),
		Status:             int(aggregate.Status()),
		CancelledBy:        cancelledBy,
		CreatedAt:          aggregate.CreatedAt(),
		AcceptedAt:         aggregate.AcceptedAt(),
		StartedAt:          aggregate.StartedAt(),
		CompletedAt:        aggregate.CompletedAt(),
		CancelledAt:        aggregate.CancelledAt(),
		TimedOutAt:         aggregate.TimedOutAt(),
		Version:            aggregate.Version(),
	}
}

func toDomain(dto RequestDTO) (*request.Request, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	requesterID, err := kernel.UUIDFromBytes(dto.RequesterID[:])
	if err != nil {
		return nil, err
	}

	var providerID *kernel.UUID
	if dto.ProviderID != nil {
		pID, pErr := kernel.UUIDFromBytes((*dto.ProviderID)[:])
		if pErr != nil {
			return nil, pErr
		}
		providerID = &pID
	}

	var cancelledBy *kernel.UUID
	if dto.CancelledBy != nil {
		cID, cErr := kernel.UUIDFromBytes((*dto.CancelledBy)[:])
		if cErr != nil {
			return nil, cErr
		}
		cancelledBy = &cID
	}

	requesterLocation, err := kernel.NewGeoPoint(dto.RequesterLat, dto.RequesterLng)
	if err != nil {
		return nil, err
	}

	var providerLocation *kernel.GeoPoint
	if dto.ProviderLat != nil && dto.ProviderLng != nil {
		loc, locErr := kernel.NewGeoPoint(*dto.ProviderLat, *dto.ProviderLng)
		if locErr != nil {
			return nil, locErr
		}
		providerLocation = &loc
	}

	return request.RestoreRequest(request.RestoreRequestParams{
		ID:                 id,
		RequesterID:        requesterID,
		ProviderID:         providerID,
		Vehicle:            kernel.VehicleCategory(dto.VehicleCategory),
		Service:            kernel.ServiceCategory(dto.ServiceCategory),
		Description:        dto.Description,
		RequesterLocation:  requesterLocation,
		ProviderLocation:   providerLocation,
		SearchRadiusKm:     dto.SearchRadiusKm,
		RadiusExpansions:   dto.RadiusExpansions,
		EscalationDeadline: dto.EscalationDeadline,
		VerificationCode:   dto.VerificationCode,
		CodeVerified:       dto.CodeVerified,
		Rating:             dto.Rating,
		Feedback:           dto.Feedback,
		Status:             request.Status(dto.Status),
		CancelledBy:        cancelledBy,
		CreatedAt:          dto.CreatedAt,
		AcceptedAt:         dto.AcceptedAt,
		StartedAt:          dto.StartedAt,
		CompletedAt:        dto.CompletedAt,
		CancelledAt:        dto.CancelledAt,
		TimedOutAt:         dto.TimedOutAt,
		Version:            dto.Version,
	})
}

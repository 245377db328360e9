// Package providerrepo provides data transfer objects and mapping functions
// for provider persistence.
package providerrepo

import (
	"time"

	"github.com/google/uuid"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/provider"
)

// ProviderDTO represents the database structure for persisting provider
// aggregates. Skill sets are stored as JSON arrays of category names so the
// columns stay readable and need no join table.
type ProviderDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string

	VehicleSkills []string `gorm:"serializer:json;type:jsonb"`
	ServiceSkills []string `gorm:"serializer:json;type:jsonb"`

	Verified  bool
	Available bool `gorm:"index"`

	Lat       *float64
	Lng       *float64
	LocatedAt *time.Time

	ActiveRequestID *uuid.UUID `gorm:"type:uuid"`

	Version int
}

// TableName specifies the database table name for provider entities.
func (ProviderDTO) TableName() string {
	return "providers"
}

func fromDomain(aggregate *provider.Provider) ProviderDTO {
	vehicles := aggregate.Skills().VehicleCategories()
	vehicleSkills := make([]string, 0, len(vehicles))
	for _, v := range vehicles {
		vehicleSkills = append(vehicleSkills, v.String())
	}

	services := aggregate.Skills().ServiceCategories()
	serviceSkills := make([]string, 0, len(services))
	for _, s := range services {
		serviceSkills = append(serviceSkills, s.String())
	}

	var lat, lng *float64
	if loc := aggregate.Location(); loc != nil {
		latValue, lngValue := loc.Latitude(), loc.Longitude()
		lat, lng = &latValue, &lngValue
	}

	var activeRequestID *uuid.UUID
	if id := aggregate.ActiveRequestID(); id != nil {
		raw := id.Bytes()
		activeRequestID = &raw
	}

	return ProviderDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		VehicleSkills:   vehicleSkills,
		ServiceSkills:   serviceSkills,
		Verified:        aggregate.IsVerified(),
		Available:       aggregate.IsAvailable(),
		Lat:             lat,
		Lng:             lng,
		LocatedAt:       aggregate.LocatedAt(),
		ActiveRequestID: activeRequestID,
		Version:         aggregate.Version(),
	}
}

func toDomain(dto ProviderDTO) (*provider.Provider, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	vehicles := make([]kernel.VehicleCategory, 0, len(dto.VehicleSkills))
	for _, name := range dto.VehicleSkills {
		category, parseErr := kernel.ParseVehicleCategory(name)
		if parseErr != nil {
			return nil, parseErr
		}
		vehicles = append(vehicles, category)
	}

	services := make([]kernel.ServiceCategory, 0, len(dto.ServiceSkills))
	for _, name := range dto.ServiceSkills {
		category, parseErr := kernel.ParseServiceCategory(name)
		if parseErr != nil {
			return nil, parseErr
		}
		services = append(services, category)
	}

	skills, err := provider.NewSkills(vehicles, services)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Lat != nil && dto.Lng != nil {
		loc, locErr := kernel.NewGeoPoint(*dto.Lat, *dto.Lng)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	var activeRequestID *kernel.UUID
	if dto.ActiveRequestID != nil {
		rID, rErr := kernel.UUIDFromBytes((*dto.ActiveRequestID)[:])
		if rErr != nil {
			return nil, rErr
		}
		activeRequestID = &rID
	}

	return provider.RestoreProvider(provider.RestoreProviderParams{
		ID:              id,
		Name:            dto.Name,
		Skills:          skills,
		Verified:        dto.Verified,
		Available:       dto.Available,
		Location:        location,
		LocatedAt:       dto.LocatedAt,
		ActiveRequestID: activeRequestID,
		Version:         dto.Version,
	})
}

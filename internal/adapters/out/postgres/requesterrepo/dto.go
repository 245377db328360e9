// Package requesterrepo provides data transfer objects and mapping functions
// for requester persistence.
package requesterrepo

import (
	"github.com/google/uuid"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/requester"
)

// RequesterDTO represents the database structure for persisting requester
// aggregates.
type RequesterDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string
	ActiveRequestID *uuid.UUID `gorm:"type:uuid"`
	Version         int
}

// TableName specifies the database table name for requester entities.
func (RequesterDTO) TableName() string {
	return "requesters"
}

func fromDomain(aggregate *requester.Requester) RequesterDTO {
	var activeRequestID *uuid.UUID
	if id := aggregate.ActiveRequestID(); id != nil {
		raw := id.Bytes()
		activeRequestID = &raw
	}

	return RequesterDTO{
		ID:              aggregate.ID().Bytes(),
		Name:            aggregate.Name(),
		ActiveRequestID: activeRequestID,
		Version:         aggregate.Version(),
	}
}

func toDomain(dto RequesterDTO) (*requester.Requester, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var activeRequestID *kernel.UUID
	if dto.ActiveRequestID != nil {
		rID, rErr := kernel.UUIDFromBytes((*dto.ActiveRequestID)[:])
		if rErr != nil {
			return nil, rErr
		}
		activeRequestID = &rID
	}

	return requester.RestoreRequester(requester.RestoreRequesterParams{
		ID:              id,
		Name:            dto.Name,
		ActiveRequestID: activeRequestID,
		Version:         dto.Version,
	})
}

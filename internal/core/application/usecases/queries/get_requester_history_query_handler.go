package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/request"
)

// GetRequesterHistoryQueryHandler reads a requester's finished requests from
// the database. Only terminal requests belong to history; the live one is
// served by the status view. An unknown requester id simply yields an empty
// history.
type GetRequesterHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetRequesterHistoryQueryHandler creates a handler for requester history
// queries. Requires a GORM database connection for query execution.
func NewGetRequesterHistoryQueryHandler(db *gorm.DB) GetRequesterHistoryQueryHandler {
	return GetRequesterHistoryQueryHandler{db: db}
}

// Handle executes the query, returning the requester's terminal requests
// newest first.
func (h GetRequesterHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetRequesterHistoryQuery,
) ([]GetRequesterHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetRequesterHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			vehicle_category,
			service_category,
			description,
			rating,
			created_at,
			completed_at
		FROM requests
		WHERE requester_id = ?
		  AND status IN (?, ?, ?)
		ORDER BY created_at DESC
	`, query.RequesterID().Bytes(),
		int(request.StatusCompleted), int(request.StatusCancelled), int(request.StatusTimedOut),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id              uuid.UUID
			status          int
			vehicleCategory int
			serviceCategory int
			description     string
			rating          sql.NullInt64
			createdAt       sql.NullTime
			completedAt     sql.NullTime
		)

		err = rows.Scan(
			&id,
			&status,
			&vehicleCategory,
			&serviceCategory,
			&description,
			&rating,
			&createdAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		entry := GetRequesterHistoryQueryResponse{
			ID:              requestID,
			Status:          request.Status(status).String(),
			VehicleCategory: kernel.VehicleCategory(vehicleCategory).String(),
			ServiceCategory: kernel.ServiceCategory(serviceCategory).String(),
			Description:     description,
			CreatedAt:       createdAt.Time,
		}
		if rating.Valid {
			value := int(rating.Int64)
			entry.Rating = &value
		}
		if completedAt.Valid {
			value := completedAt.Time
			entry.CompletedAt = &value
		}

		history = append(history, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

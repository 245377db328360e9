package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/request"
)

// GetProviderHistoryQueryHandler reads a provider's completed jobs from the
// database. Assigned-but-unfinished work is not history yet, and cancelled or
// timed-out requests never earned the provider anything. An unknown provider
// id simply yields an empty history.
type GetProviderHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetProviderHistoryQueryHandler creates a handler for provider history
// queries. Requires a GORM database connection for query execution.
func NewGetProviderHistoryQueryHandler(db *gorm.DB) GetProviderHistoryQueryHandler {
	return GetProviderHistoryQueryHandler{db: db}
}

// Handle executes the query, returning the provider's completed jobs, most
// recently finished first.
func (h GetProviderHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetProviderHistoryQuery,
) ([]GetProviderHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	history := make([]GetProviderHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			vehicle_category,
			service_category,
			rating,
			feedback,
			accepted_at,
			completed_at
		FROM requests
		WHERE provider_id = ?
		  AND status = ?
		ORDER BY completed_at DESC
	`, query.ProviderID().Bytes(), int(request.StatusCompleted)).Rows()
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
			rating          sql.NullInt64
			feedback        sql.NullString
			acceptedAt      sql.NullTime
			completedAt     sql.NullTime
		)

		err = rows.Scan(
			&id,
			&status,
			&vehicleCategory,
			&serviceCategory,
			&rating,
			&feedback,
			&acceptedAt,
			&completedAt,
		)
		if err != nil {
			return nil, err
		}

		requestID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		entry := GetProviderHistoryQueryResponse{
			ID:              requestID,
			Status:          request.Status(status).String(),
			VehicleCategory: kernel.VehicleCategory(vehicleCategory).String(),
			ServiceCategory: kernel.ServiceCategory(serviceCategory).String(),
		}
		if rating.Valid {
			value := int(rating.Int64)
			entry.Rating = &value
		}
		if feedback.Valid {
			value := feedback.String
			entry.Feedback = &value
		}
		if acceptedAt.Valid {
			value := acceptedAt.Time
			entry.AcceptedAt = &value
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

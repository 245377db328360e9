package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/model/request"
	"roadside/internal/pkg/errs"
)

// GetRequestStatusQueryHandler reads the status view of a request straight
// from the database, bypassing the aggregate.
//
// Example:
//
//	handler := NewGetRequestStatusQueryHandler(db)
//	query, _ := NewGetRequestStatusQuery(requestID)
//
//	status, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get request status: %v", err)
//	    return err
//	}
type GetRequestStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetRequestStatusQueryHandler creates a handler for request status queries.
// Requires a GORM database connection for query execution.
func NewGetRequestStatusQueryHandler(db *gorm.DB) GetRequestStatusQueryHandler {
	return GetRequestStatusQueryHandler{db: db}
}

// Handle executes the query for a single request. Returns an
// ObjectNotFoundError when no request with the given id exists.
func (h GetRequestStatusQueryHandler) Handle(
	ctx context.Context,
	query GetRequestStatusQuery,
) (GetRequestStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetRequestStatusQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			search_radius_km,
			radius_expansions,
			escalation_deadline,
			provider_id,
			provider_lat,
			provider_lng,
			code_verified,
			verification_code,
			rating,
			feedback,
			created_at
		FROM requests
		WHERE id = ?
	`, query.RequestID().Bytes()).Row()

	var (
		id                 uuid.UUID
		status             int
		searchRadiusKm     float64
		radiusExpansions   int
		escalationDeadline time.Time
		providerID         *uuid.UUID
		providerLat        sql.NullFloat64
		providerLng        sql.NullFloat64
		codeVerified       bool
		verificationCode   sql.NullString
		rating             sql.NullInt64
		feedback           sql.NullString
		createdAt          time.Time
	)

	err := row.Scan(
		&id,
		&status,
		&searchRadiusKm,
		&radiusExpansions,
		&escalationDeadline,
		&providerID,
		&providerLat,
		&providerLng,
		&codeVerified,
		&verificationCode,
		&rating,
		&feedback,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetRequestStatusQueryResponse{}, errs.NewObjectNotFoundError("request", query.RequestID())
		}
		return GetRequestStatusQueryResponse{}, err
	}

	requestID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetRequestStatusQueryResponse{}, err
	}

	resp := GetRequestStatusQueryResponse{
		ID:                 requestID,
		Status:             request.Status(status).String(),
		SearchRadiusKm:     searchRadiusKm,
		RadiusExpansions:   radiusExpansions,
		EscalationDeadline: escalationDeadline,
		CodeVerified:       codeVerified,
		CreatedAt:          createdAt,
	}

	if providerID != nil {
		pID, idErr := kernel.UUIDFromBytes((*providerID)[:])
		if idErr != nil {
			return GetRequestStatusQueryResponse{}, idErr
		}
		resp.ProviderID = &pID
	}

	if providerLat.Valid && providerLng.Valid {
		location, locErr := kernel.NewGeoPoint(providerLat.Float64, providerLng.Float64)
		if locErr != nil {
			return GetRequestStatusQueryResponse{}, locErr
		}
		resp.ProviderLocation = &location
	}

	if rating.Valid {
		value := int(rating.Int64)
		resp.Rating = &value
	}
	if feedback.Valid {
		value := feedback.String
		resp.Feedback = &value
	}

	switch request.Status(status) {
	case request.StatusSearching:
		resp.CanCancel = true
	case request.StatusAccepted:
		resp.AllowVerify = !codeVerified
		resp.CanCancel = true
		// shown to the requester until the provider verifies on arrival
		if !codeVerified && verificationCode.Valid {
			code := verificationCode.String
			resp.VerificationCode = &code
		}
	case request.StatusInProgress:
		resp.CanComplete = true
	}

	return resp, nil
}

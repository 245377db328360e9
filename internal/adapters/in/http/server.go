// Package http exposes the dispatch engine over an echo HTTP API.
// Handlers translate JSON payloads into engine calls and map domain error
// kinds onto HTTP status codes.
package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"roadside/internal/core/application/engine"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
)

// Server handles HTTP requests by delegating to the dispatch engine.
type Server struct {
	engine engine.DispatchEngine
}

// NewServer creates an HTTP server over the dispatch engine.
func NewServer(dispatchEngine engine.DispatchEngine) *Server {
	return &Server{engine: dispatchEngine}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/requests", s.CreateRequest)
	api.GET("/requests/:requestId", s.GetRequestStatus)
	api.POST("/requests/:requestId/accept", s.AcceptRequest)
	api.POST("/requests/:requestId/verify", s.VerifyStart)
	api.POST("/requests/:requestId/complete", s.CompleteRequest)
	api.POST("/requests/:requestId/cancel", s.CancelRequest)
	api.POST("/requests/:requestId/feedback", s.SubmitFeedback)

	api.GET("/providers/:providerId/matches", s.SearchMatches)
	api.POST("/providers/:providerId/location", s.UpdateProviderLocation)
	api.POST("/providers/:providerId/availability", s.SetProviderAvailability)
	api.GET("/providers/:providerId/history", s.GetProviderHistory)

	api.GET("/requesters/:requesterId/history", s.GetRequesterHistory)
}

// CreateRequest handles POST /api/v1/requests.
func (s *Server) CreateRequest(ctx echo.Context) error {
	var body CreateRequestBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	requesterID, err := kernel.UUIDFromString(body.RequesterID)
	if err != nil {
		return writeDomainError(ctx, err)
	}
	vehicle, err := kernel.ParseVehicleCategory(body.VehicleCategory)
	if err != nil {
		return writeDomainError(ctx, err)
	}
	service, err := kernel.ParseServiceCategory(body.ServiceCategory)
	if err != nil {
		return writeDomainError(ctx, err)
	}
	location, err := kernel.NewGeoPoint(body.Location.Lat, body.Location.Lng)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	requestID, err := s.engine.CreateRequest(
		ctx.Request().Context(), requesterID, vehicle, service, body.Description, location)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateRequestResponse{
		RequestID: requestID.String(),
	})
}

// GetRequestStatus handles GET /api/v1/requests/:requestId.
func (s *Server) GetRequestStatus(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("requestId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	status, err := s.engine.GetStatus(ctx.Request().Context(), requestID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	resp := RequestStatusResponse{
		RequestID:          status.ID.String(),
		Status:             status.Status,
		SearchRadiusKm:     status.SearchRadiusKm,
		RadiusExpansions:   status.RadiusExpansions,
		EscalationDeadline: status.EscalationDeadline,
		CodeVerified:       status.CodeVerified,
		VerificationCode:   status.VerificationCode,
		Rating:             status.Rating,
		Feedback:           status.Feedback,
		AllowVerify:        status.AllowVerify,
		CanCancel:          status.CanCancel,
		CanComplete:        status.CanComplete,
		CreatedAt:          status.CreatedAt,
	}
	if status.ProviderID != nil {
		id := status.ProviderID.String()
		resp.ProviderID = &id
	}
	if status.ProviderLocation != nil {
		resp.ProviderLocation = &GeoPointBody{
			Lat: status.ProviderLocation.Latitude(),
			Lng: status.ProviderLocation.Longitude(),
		}
	}

	return ctx.JSON(http.StatusOK, resp)
}

// AcceptRequest handles POST /api/v1/requests/:requestId/accept.
func (s *Server) AcceptRequest(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("requestId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var body AcceptRequestBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	providerID, err := kernel.UUIDFromString(body.ProviderID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	code, err := s.engine.Accept(ctx.Request().Context(), requestID, providerID)
	if err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, AcceptRequestResponse{
		VerificationCode: code,
	})
}

// VerifyStart handles POST /api/v1/requests/:requestId/verify.
func (s *Server) VerifyStart(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("requestId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var body VerifyStartBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	if err := s.engine.VerifyStart(ctx.Request().Context(), requestID, body.Code); err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CompleteRequest handles POST /api/v1/requests/:requestId/complete.
func (s *Server) CompleteRequest(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("requestId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var body CallerBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	requesterID, err := kernel.UUIDFromString(body.RequesterID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.engine.Complete(ctx.Request().Context(), requestID, requesterID); err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CancelRequest handles POST /api/v1/requests/:requestId/cancel.
func (s *Server) CancelRequest(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("requestId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var body CallerBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	requesterID, err := kernel.UUIDFromString(body.RequesterID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.engine.Cancel(ctx.Request().Context(), requestID, requesterID); err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SubmitFeedback handles POST /api/v1/requests/:requestId/feedback.
func (s *Server) SubmitFeedback(ctx echo.Context) error {
	requestID, err := kernel.UUIDFromString(ctx.Param("requestId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var body SubmitFeedbackBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	if err := s.engine.SubmitFeedback(
		ctx.Request().Context(), requestID, body.Rating, body.Feedback); err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SearchMatches handles GET /api/v1/providers/:providerId/matches.
func (s *Server) SearchMatches(ctx echo.Context) error {
	providerID, err := kernel.UUIDFromString(ctx.Param("providerId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	matches, err := s.engine.SearchMatches(ctx.Request().Context(), providerID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	resp := make([]MatchResponse, 0, len(matches))
	for _, match := range matches {
		resp = append(resp, MatchResponse{
			RequestID:       match.Request.ID().String(),
			VehicleCategory: match.Request.VehicleCategory().String(),
			ServiceCategory: match.Request.ServiceCategory().String(),
			Description:     match.Request.Description(),
			Location: GeoPointBody{
				Lat: match.Request.RequesterLocation().Latitude(),
				Lng: match.Request.RequesterLocation().Longitude(),
			},
			DistanceKm: match.DistanceKm,
		})
	}

	return ctx.JSON(http.StatusOK, resp)
}

// UpdateProviderLocation handles POST /api/v1/providers/:providerId/location.
func (s *Server) UpdateProviderLocation(ctx echo.Context) error {
	providerID, err := kernel.UUIDFromString(ctx.Param("providerId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var body GeoPointBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	location, err := kernel.NewGeoPoint(body.Lat, body.Lng)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	if err := s.engine.UpdateProviderLocation(ctx.Request().Context(), providerID, location); err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// SetProviderAvailability handles POST /api/v1/providers/:providerId/availability.
func (s *Server) SetProviderAvailability(ctx echo.Context) error {
	providerID, err := kernel.UUIDFromString(ctx.Param("providerId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	var body SetAvailabilityBody
	if err := ctx.Bind(&body); err != nil {
		return writeError(ctx, http.StatusBadRequest, "invalid request body")
	}

	var location *kernel.GeoPoint
	if body.Location != nil {
		loc, locErr := kernel.NewGeoPoint(body.Location.Lat, body.Location.Lng)
		if locErr != nil {
			return writeDomainError(ctx, locErr)
		}
		location = &loc
	}

	if err := s.engine.SetProviderAvailability(
		ctx.Request().Context(), providerID, body.Available, location); err != nil {
		return writeDomainError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetProviderHistory handles GET /api/v1/providers/:providerId/history.
func (s *Server) GetProviderHistory(ctx echo.Context) error {
	providerID, err := kernel.UUIDFromString(ctx.Param("providerId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	history, err := s.engine.GetProviderHistory(ctx.Request().Context(), providerID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	resp := make([]ProviderHistoryEntry, 0, len(history))
	for _, entry := range history {
		resp = append(resp, ProviderHistoryEntry{
			RequestID:       entry.ID.String(),
			Status:          entry.Status,
			VehicleCategory: entry.VehicleCategory,
			ServiceCategory: entry.ServiceCategory,
			Rating:          entry.Rating,
			Feedback:        entry.Feedback,
			AcceptedAt:      entry.AcceptedAt,
			CompletedAt:     entry.CompletedAt,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// GetRequesterHistory handles GET /api/v1/requesters/:requesterId/history.
func (s *Server) GetRequesterHistory(ctx echo.Context) error {
	requesterID, err := kernel.UUIDFromString(ctx.Param("requesterId"))
	if err != nil {
		return writeDomainError(ctx, err)
	}

	history, err := s.engine.GetRequesterHistory(ctx.Request().Context(), requesterID)
	if err != nil {
		return writeDomainError(ctx, err)
	}

	resp := make([]RequesterHistoryEntry, 0, len(history))
	for _, entry := range history {
		resp = append(resp, RequesterHistoryEntry{
			RequestID:       entry.ID.String(),
			Status:          entry.Status,
			VehicleCategory: entry.VehicleCategory,
			ServiceCategory: entry.ServiceCategory,
			Description:     entry.Description,
			Rating:          entry.Rating,
			CreatedAt:       entry.CreatedAt,
			CompletedAt:     entry.CompletedAt,
		})
	}
	return ctx.JSON(http.StatusOK, resp)
}

// writeDomainError maps the domain error kind to an HTTP status and writes
// the error body.
func writeDomainError(ctx echo.Context, err error) error {
	return writeError(ctx, statusFromError(err), err.Error())
}

func writeError(ctx echo.Context, status int, message string) error {
	return ctx.JSON(status, ErrorResponse{
		Code:    status,
		Message: message,
	})
}

// statusFromError maps error kinds onto HTTP statuses. Version errors are
// lost optimistic-concurrency races and surface as Conflict.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrNotEligible):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrConflict), errors.Is(err, errs.ErrVersionIsInvalid):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Package engine exposes the dispatch engine facade: one method per
// operation of the request lifecycle, composing the command and query
// handlers behind a single entry point for the inbound adapters.
package engine

import (
	"context"
	"errors"

	"roadside/internal/core/application/usecases/commands"
	"roadside/internal/core/application/usecases/queries"
	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/core/domain/services"
	"roadside/internal/pkg/errs"
)

// DispatchEngine is the application-level facade over the dispatch use
// cases. It owns no business rules itself: each method builds the command
// or query and delegates to its handler.
//
// Read paths (SearchMatches, GetStatus) run the lazy escalation refresh
// before reading, so radius expansions and timeouts are observed without a
// background process.
type DispatchEngine struct {
	createRequest       commands.CreateRequestCommandHandler
	acceptRequest       commands.AcceptRequestCommandHandler
	verifyStart         commands.VerifyStartCommandHandler
	completeRequest     commands.CompleteRequestCommandHandler
	cancelRequest       commands.CancelRequestCommandHandler
	submitFeedback      commands.SubmitFeedbackCommandHandler
	updateLocation      commands.UpdateProviderLocationCommandHandler
	setAvailability     commands.SetProviderAvailabilityCommandHandler
	refreshSearching    commands.RefreshSearchingRequestsCommandHandler
	findNearby          commands.FindNearbyRequestsCommandHandler
	getRequestStatus    queries.GetRequestStatusQueryHandler
	getRequesterHistory queries.GetRequesterHistoryQueryHandler
	getProviderHistory  queries.GetProviderHistoryQueryHandler
}

// Handlers bundles the use case handlers composed into the engine.
type Handlers struct {
	CreateRequest       commands.CreateRequestCommandHandler
	AcceptRequest       commands.AcceptRequestCommandHandler
	VerifyStart         commands.VerifyStartCommandHandler
	CompleteRequest     commands.CompleteRequestCommandHandler
	CancelRequest       commands.CancelRequestCommandHandler
	SubmitFeedback      commands.SubmitFeedbackCommandHandler
	UpdateLocation      commands.UpdateProviderLocationCommandHandler
	SetAvailability     commands.SetProviderAvailabilityCommandHandler
	RefreshSearching    commands.RefreshSearchingRequestsCommandHandler
	FindNearby          commands.FindNearbyRequestsCommandHandler
	GetRequestStatus    queries.GetRequestStatusQueryHandler
	GetRequesterHistory queries.GetRequesterHistoryQueryHandler
	GetProviderHistory  queries.GetProviderHistoryQueryHandler
}

// NewDispatchEngine creates the facade from the composed handlers.
func NewDispatchEngine(h Handlers) DispatchEngine {
	return DispatchEngine{
		createRequest:       h.CreateRequest,
		acceptRequest:       h.AcceptRequest,
		verifyStart:         h.VerifyStart,
		completeRequest:     h.CompleteRequest,
		cancelRequest:       h.CancelRequest,
		submitFeedback:      h.SubmitFeedback,
		updateLocation:      h.UpdateLocation,
		setAvailability:     h.SetAvailability,
		refreshSearching:    h.RefreshSearching,
		findNearby:          h.FindNearby,
		getRequestStatus:    h.GetRequestStatus,
		getRequesterHistory: h.GetRequesterHistory,
		getProviderHistory:  h.GetProviderHistory,
	}
}

// CreateRequest opens a new service request for the requester and returns
// the generated request id. Fails with Conflict when the requester already
// has an active request.
func (e DispatchEngine) CreateRequest(
	ctx context.Context,
	requesterID kernel.UUID,
	vehicle kernel.VehicleCategory,
	service kernel.ServiceCategory,
	description string,
	location kernel.GeoPoint,
) (kernel.UUID, error) {
	requestID := kernel.NewUUID()

	cmd, err := commands.NewCreateRequestCommand(
		requestID, requesterID, vehicle, service, description, location)
	if err != nil {
		return kernel.UUID{}, err
	}

	if err := e.createRequest.Handle(ctx, cmd); err != nil {
		return kernel.UUID{}, err
	}
	return requestID, nil
}

// SearchMatches returns the SEARCHING requests the provider can serve,
// closest first, after refreshing escalation state.
func (e DispatchEngine) SearchMatches(
	ctx context.Context, providerID kernel.UUID,
) ([]services.Match, error) {
	cmd, err := commands.NewFindNearbyRequestsCommand(providerID)
	if err != nil {
		return nil, err
	}
	return e.findNearby.Handle(ctx, cmd)
}

// Accept assigns the request to the provider and returns the generated
// verification code the provider will read back on arrival. The loser of a
// race for the same request observes Conflict.
func (e DispatchEngine) Accept(
	ctx context.Context, requestID, providerID kernel.UUID,
) (string, error) {
	cmd, err := commands.NewAcceptRequestCommand(requestID, providerID)
	if err != nil {
		return "", err
	}
	return e.acceptRequest.Handle(ctx, cmd)
}

// VerifyStart checks the submitted verification code and moves the request
// to IN_PROGRESS.
func (e DispatchEngine) VerifyStart(ctx context.Context, requestID kernel.UUID, code string) error {
	cmd, err := commands.NewVerifyStartCommand(requestID, code)
	if err != nil {
		return err
	}
	return e.verifyStart.Handle(ctx, cmd)
}

// Complete marks the request COMPLETED and releases the provider and the
// requester. Only the requester who opened the request may complete it.
func (e DispatchEngine) Complete(ctx context.Context, requestID, requesterID kernel.UUID) error {
	cmd, err := commands.NewCompleteRequestCommand(requestID, requesterID)
	if err != nil {
		return err
	}
	return e.completeRequest.Handle(ctx, cmd)
}

// Cancel cancels the request from SEARCHING or ACCEPTED. Only the requester
// who opened the request may cancel it.
func (e DispatchEngine) Cancel(ctx context.Context, requestID, requesterID kernel.UUID) error {
	cmd, err := commands.NewCancelRequestCommand(requestID, requesterID)
	if err != nil {
		return err
	}
	return e.cancelRequest.Handle(ctx, cmd)
}

// SubmitFeedback records a one-time rating and optional feedback text on a
// COMPLETED request.
func (e DispatchEngine) SubmitFeedback(
	ctx context.Context, requestID kernel.UUID, rating int, feedback string,
) error {
	cmd, err := commands.NewSubmitFeedbackCommand(requestID, rating, feedback)
	if err != nil {
		return err
	}
	return e.submitFeedback.Handle(ctx, cmd)
}

// UpdateProviderLocation records the provider's current location and, while
// assigned, snapshots it on the active request.
func (e DispatchEngine) UpdateProviderLocation(
	ctx context.Context, providerID kernel.UUID, location kernel.GeoPoint,
) error {
	cmd, err := commands.NewUpdateProviderLocationCommand(providerID, location)
	if err != nil {
		return err
	}
	return e.updateLocation.Handle(ctx, cmd)
}

// SetProviderAvailability toggles the provider online (location required) or
// offline.
func (e DispatchEngine) SetProviderAvailability(
	ctx context.Context, providerID kernel.UUID, available bool, location *kernel.GeoPoint,
) error {
	cmd, err := commands.NewSetProviderAvailabilityCommand(providerID, available, location)
	if err != nil {
		return err
	}
	return e.setAvailability.Handle(ctx, cmd)
}

// GetStatus returns the live status view of a request. The targeted
// escalation refresh runs first so an overdue request is seen expanded or
// timed out. A refresh lost to a concurrent writer is ignored; the
// concurrent write is newer anyway.
func (e DispatchEngine) GetStatus(
	ctx context.Context, requestID kernel.UUID,
) (queries.GetRequestStatusQueryResponse, error) {
	refreshCmd, err := commands.NewRefreshSearchingRequestCommand(requestID)
	if err != nil {
		return queries.GetRequestStatusQueryResponse{}, err
	}
	if err := e.refreshSearching.Handle(ctx, refreshCmd); err != nil {
		if !errors.Is(err, errs.ErrConflict) && !errors.Is(err, errs.ErrVersionIsInvalid) {
			return queries.GetRequestStatusQueryResponse{}, err
		}
	}

	query, err := queries.NewGetRequestStatusQuery(requestID)
	if err != nil {
		return queries.GetRequestStatusQueryResponse{}, err
	}
	return e.getRequestStatus.Handle(ctx, query)
}

// GetRequesterHistory returns the requester's requests, newest first.
func (e DispatchEngine) GetRequesterHistory(
	ctx context.Context, requesterID kernel.UUID,
) ([]queries.GetRequesterHistoryQueryResponse, error) {
	query, err := queries.NewGetRequesterHistoryQuery(requesterID)
	if err != nil {
		return nil, err
	}
	return e.getRequesterHistory.Handle(ctx, query)
}

// GetProviderHistory returns the provider's worked requests, newest first.
func (e DispatchEngine) GetProviderHistory(
	ctx context.Context, providerID kernel.UUID,
) ([]queries.GetProviderHistoryQueryResponse, error) {
	query, err := queries.NewGetProviderHistoryQuery(providerID)
	if err != nil {
		return nil, err
	}
	return e.getProviderHistory.Handle(ctx, query)
}

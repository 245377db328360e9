package commands

import (
	"context"

	"roadside/internal/core/domain/services"
)

// FindNearbyRequestsCommandHandler implements the provider's match scan.
// It is a command rather than a query because the scan first pushes every
// SEARCHING request through the escalation policy: radii widen and overdue
// requests time out as a side effect of looking, which is what makes the
// lazy escalation model work without a scheduler.
//
// Example:
//
//	handler := NewFindNearbyRequestsCommandHandler(uowFactory, policy)
//	cmd, _ := NewFindNearbyRequestsCommand(providerID)
//	matches, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, errs.ErrNotEligible) {
//	    // provider offline, unverified or already assigned
//	}
type FindNearbyRequestsCommandHandler struct {
	uowFactory UoWFactory
	policy     services.EscalationPolicy
	matcher    services.GeoMatcher
}

// NewFindNearbyRequestsCommandHandler creates a handler for the match scan.
func NewFindNearbyRequestsCommandHandler(
	uowFactory UoWFactory, policy services.EscalationPolicy,
) FindNearbyRequestsCommandHandler {
	return FindNearbyRequestsCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		matcher:    services.NewGeoMatcher(),
	}
}

// Handle refreshes all searching requests, then matches them against the
// provider's skills and location. Matches come back closest first.
func (h FindNearbyRequestsCommandHandler) Handle(
	ctx context.Context, cmd FindNearbyRequestsCommand,
) ([]services.Match, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.policy.Validate(); err != nil {
		return nil, err
	}

	refreshHandler := NewRefreshSearchingRequestsCommandHandler(h.uowFactory, h.policy)
	if err := refreshHandler.Handle(ctx, NewRefreshSearchingRequestsCommand()); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	mechanic, err := uow.ProviderRepository().Get(ctx, cmd.ProviderID())
	if err != nil {
		return nil, err
	}

	searching, err := uow.RequestRepository().GetAllInSearchingStatus(ctx)
	if err != nil {
		return nil, err
	}

	matches, err := h.matcher.Match(mechanic, searching)
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return matches, nil
}

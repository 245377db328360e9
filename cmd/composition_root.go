package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"roadside/internal/adapters/out/postgres"
	"roadside/internal/core/application/engine"
	"roadside/internal/core/application/usecases/commands"
	"roadside/internal/core/application/usecases/queries"
	"roadside/internal/core/domain/services"
)

// Escalation defaults, used when the environment leaves them unset.
const (
	defaultRadiusStepsKm             = "3,5,8,12"
	defaultMaxRadiusExpansions       = 3
	defaultEscalationIntervalSeconds = 30
)

// CompositionRoot wires the adapters, the escalation policy and the use case
// handlers into the dispatch engine.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	policy     services.EscalationPolicy
}

// NewCompositionRoot builds the object graph from the configuration and an
// open database connection.
func NewCompositionRoot(config Config, gormDB *gorm.DB) (CompositionRoot, error) {
	policy, err := escalationPolicyFromConfig(config)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		policy:     policy,
	}, nil
}

// CreateDispatchEngine assembles the engine facade over all handlers.
func (c *CompositionRoot) CreateDispatchEngine() engine.DispatchEngine {
	return engine.NewDispatchEngine(engine.Handlers{
		CreateRequest:       c.CreateCreateRequestCommandHandler(),
		AcceptRequest:       c.CreateAcceptRequestCommandHandler(),
		VerifyStart:         c.CreateVerifyStartCommandHandler(),
		CompleteRequest:     c.CreateCompleteRequestCommandHandler(),
		CancelRequest:       c.CreateCancelRequestCommandHandler(),
		SubmitFeedback:      c.CreateSubmitFeedbackCommandHandler(),
		UpdateLocation:      c.CreateUpdateProviderLocationCommandHandler(),
		SetAvailability:     c.CreateSetProviderAvailabilityCommandHandler(),
		RefreshSearching:    c.CreateRefreshSearchingRequestsCommandHandler(),
		FindNearby:          c.CreateFindNearbyRequestsCommandHandler(),
		GetRequestStatus:    c.CreateGetRequestStatusQueryHandler(),
		GetRequesterHistory: c.CreateGetRequesterHistoryQueryHandler(),
		GetProviderHistory:  c.CreateGetProviderHistoryQueryHandler(),
	})
}

func (c *CompositionRoot) CreateCreateRequestCommandHandler() commands.CreateRequestCommandHandler {
	return commands.NewCreateRequestCommandHandler(c.fullUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateAcceptRequestCommandHandler() commands.AcceptRequestCommandHandler {
	return commands.NewAcceptRequestCommandHandler(c.fullUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateVerifyStartCommandHandler() commands.VerifyStartCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewVerifyStartCommandHandler(f)
}

func (c *CompositionRoot) CreateCompleteRequestCommandHandler() commands.CompleteRequestCommandHandler {
	return commands.NewCompleteRequestCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateCancelRequestCommandHandler() commands.CancelRequestCommandHandler {
	return commands.NewCancelRequestCommandHandler(c.fullUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateSubmitFeedbackCommandHandler() commands.SubmitFeedbackCommandHandler {
	var f commands.RequestUoWFactory = FuncRequestUoWFactory(func() commands.RequestUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitFeedbackCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateProviderLocationCommandHandler() commands.UpdateProviderLocationCommandHandler {
	return commands.NewUpdateProviderLocationCommandHandler(c.fullUoWFactory())
}

func (c *CompositionRoot) CreateSetProviderAvailabilityCommandHandler() commands.SetProviderAvailabilityCommandHandler {
	var f commands.ProviderUoWFactory = FuncProviderUoWFactory(func() commands.ProviderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetProviderAvailabilityCommandHandler(f)
}

func (c *CompositionRoot) CreateRefreshSearchingRequestsCommandHandler() commands.RefreshSearchingRequestsCommandHandler {
	return commands.NewRefreshSearchingRequestsCommandHandler(c.fullUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateFindNearbyRequestsCommandHandler() commands.FindNearbyRequestsCommandHandler {
	return commands.NewFindNearbyRequestsCommandHandler(c.fullUoWFactory(), c.policy)
}

func (c *CompositionRoot) CreateGetRequestStatusQueryHandler() queries.GetRequestStatusQueryHandler {
	return queries.NewGetRequestStatusQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRequesterHistoryQueryHandler() queries.GetRequesterHistoryQueryHandler {
	return queries.NewGetRequesterHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetProviderHistoryQueryHandler() queries.GetProviderHistoryQueryHandler {
	return queries.NewGetProviderHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) fullUoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// escalationPolicyFromConfig parses the escalation settings, falling back to
// the defaults for unset values.
func escalationPolicyFromConfig(config Config) (services.EscalationPolicy, error) {
	stepsRaw := config.RadiusStepsKm
	if stepsRaw == "" {
		stepsRaw = defaultRadiusStepsKm
	}

	parts := strings.Split(stepsRaw, ",")
	steps := make([]float64, 0, len(parts))
	for _, part := range parts {
		step, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return services.EscalationPolicy{}, fmt.Errorf("parse radius steps %q: %w", stepsRaw, err)
		}
		steps = append(steps, step)
	}

	maxExpansions := defaultMaxRadiusExpansions
	if config.MaxRadiusExpansions != "" {
		parsed, err := strconv.Atoi(config.MaxRadiusExpansions)
		if err != nil {
			return services.EscalationPolicy{}, fmt.Errorf("parse max radius expansions: %w", err)
		}
		maxExpansions = parsed
	}

	intervalSeconds := defaultEscalationIntervalSeconds
	if config.EscalationIntervalSeconds != "" {
		parsed, err := strconv.Atoi(config.EscalationIntervalSeconds)
		if err != nil {
			return services.EscalationPolicy{}, fmt.Errorf("parse escalation interval: %w", err)
		}
		intervalSeconds = parsed
	}

	return services.NewEscalationPolicy(steps, maxExpansions, time.Duration(intervalSeconds)*time.Second)
}

// FuncRequestUoWFactory adapts a plain function to the request-scoped unit
// of work factory consumed by the command handlers.
type FuncRequestUoWFactory func() commands.RequestUoW

// Create builds a fresh unit of work by calling the wrapped function.
func (f FuncRequestUoWFactory) Create() commands.RequestUoW {
	return f()
}

// FuncProviderUoWFactory adapts a plain function to the provider-scoped unit
// of work factory consumed by the command handlers.
type FuncProviderUoWFactory func() commands.ProviderUoW

// Create builds a fresh unit of work by calling the wrapped function.
func (f FuncProviderUoWFactory) Create() commands.ProviderUoW {
	return f()
}

// FuncUoWFactory adapts a plain function to the full unit of work factory
// consumed by the command handlers touching all three aggregates.
type FuncUoWFactory func() commands.UoW

// Create builds a fresh unit of work by calling the wrapped function.
func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

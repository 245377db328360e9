package provider

import (
	"errors"
	"sort"

	"roadside/internal/core/domain/model/kernel"
	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

// ErrSkillsAreNotConstructed is returned when a Skills value was not created
// through NewSkills.
var ErrSkillsAreNotConstructed = errors.New("Skills must be created via NewSkills")

// Skills is a value object describing what a provider can work on: the
// vehicle categories they service and the kinds of service they perform.
// Both sets must be non-empty; a provider with no declared skills can match
// nothing and is a registration error, not a valid state.
type Skills struct {
	vehicles map[kernel.VehicleCategory]bool
	services map[kernel.ServiceCategory]bool
	guard    guard.ConstructorGuard
}

// NewSkills creates a Skills value from the provider's declared categories.
// Duplicates are collapsed; invalid categories are rejected.
func NewSkills(vehicles []kernel.VehicleCategory, services []kernel.ServiceCategory) (Skills, error) {
	if len(vehicles) == 0 {
		return Skills{}, errs.NewValueIsRequiredError("vehicle categories")
	}
	if len(services) == 0 {
		return Skills{}, errs.NewValueIsRequiredError("service categories")
	}

	vehicleSet := make(map[kernel.VehicleCategory]bool, len(vehicles))
	for _, v := range vehicles {
		if err := v.Validate(); err != nil {
			return Skills{}, err
		}
		vehicleSet[v] = true
	}

	serviceSet := make(map[kernel.ServiceCategory]bool, len(services))
	for _, s := range services {
		if err := s.Validate(); err != nil {
			return Skills{}, err
		}
		serviceSet[s] = true
	}

	return Skills{
		vehicles: vehicleSet,
		services: serviceSet,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Skills value was created through the constructor.
func (s Skills) Validate() error {
	return s.guard.Validate(ErrSkillsAreNotConstructed)
}

// CanServe reports whether the provider's skills cover both the vehicle and
// the service category of a request. Both must match.
func (s Skills) CanServe(vehicle kernel.VehicleCategory, service kernel.ServiceCategory) bool {
	return s.vehicles[vehicle] && s.services[service]
}

// VehicleCategories returns the vehicle categories in a stable order.
func (s Skills) VehicleCategories() []kernel.VehicleCategory {
	result := make([]kernel.VehicleCategory, 0, len(s.vehicles))
	for v := range s.vehicles {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

// ServiceCategories returns the service categories in a stable order.
func (s Skills) ServiceCategories() []kernel.ServiceCategory {
	result := make([]kernel.ServiceCategory, 0, len(s.services))
	for sc := range s.services {
		result = append(result, sc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i] < result[j] })
	return result
}

package kernel

import (
	"fmt"
	"strings"

	"roadside/internal/pkg/errs"
)

// VehicleCategory is the closed enumeration of vehicle kinds a service
// request can concern and a provider can be skilled in.
//
// Categories arrive from the boundary as free-form strings; ParseVehicleCategory
// normalizes case once at ingestion so that all later comparisons are exact.
type VehicleCategory int

const (
	// VehicleUnknown represents an invalid or undefined vehicle category.
	VehicleUnknown VehicleCategory = iota
	VehicleBike
	VehicleCar
	VehicleAuto
	VehicleBus
	VehicleLorry
)

func getVehicleCategoryStrings() map[VehicleCategory]string {
	return map[VehicleCategory]string{
		VehicleBike:  "BIKE",
		VehicleCar:   "CAR",
		VehicleAuto:  "AUTO",
		VehicleBus:   "BUS",
		VehicleLorry: "LORRY",
	}
}

// ParseVehicleCategory converts a free-form string into a VehicleCategory,
// ignoring case and surrounding whitespace. Returns a ValueIsInvalidError for
// values outside the enumeration.
func ParseVehicleCategory(s string) (VehicleCategory, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for category, name := range getVehicleCategoryStrings() {
		if name == normalized {
			return category, nil
		}
	}
	return VehicleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"vehicle category", fmt.Errorf("%q is not a known vehicle category", s))
}

// Validate checks that the category is a member of the enumeration.
func (c VehicleCategory) Validate() error {
	if _, ok := getVehicleCategoryStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"vehicle category", fmt.Errorf("%d is not a valid vehicle category", c))
	}
	return nil
}

// String returns the canonical upper-case name of the category.
func (c VehicleCategory) String() string {
	if name, ok := getVehicleCategoryStrings()[c]; ok {
		return name
	}
	return "UNKNOWN"
}

// ServiceCategory is the closed enumeration of roadside service kinds.
type ServiceCategory int

const (
	// ServiceUnknown represents an invalid or undefined service category.
	ServiceUnknown ServiceCategory = iota
	ServicePuncture
	ServiceBattery
	ServiceEngine
	ServiceTransmission
	ServiceLights
	ServiceBrake
)

func getServiceCategoryStrings() map[ServiceCategory]string {
	return map[ServiceCategory]string{
		ServicePuncture:     "PUNCTURE",
		ServiceBattery:      "BATTERY",
		ServiceEngine:       "ENGINE",
		ServiceTransmission: "TRANSMISSION",
		ServiceLights:       "LIGHTS",
		ServiceBrake:        "BRAKE",
	}
}

// ParseServiceCategory converts a free-form string into a ServiceCategory,
// ignoring case and surrounding whitespace. Returns a ValueIsInvalidError for
// values outside the enumeration.
func ParseServiceCategory(s string) (ServiceCategory, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	for category, name := range getServiceCategoryStrings() {
		if name == normalized {
			return category, nil
		}
	}
	return ServiceUnknown, errs.NewValueIsInvalidErrorWithCause(
		"service category", fmt.Errorf("%q is not a known service category", s))
}

// Validate checks that the category is a member of the enumeration.
func (c ServiceCategory) Validate() error {
	if _, ok := getServiceCategoryStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"service category", fmt.Errorf("%d is not a valid service category", c))
	}
	return nil
}

// String returns the canonical upper-case name of the category.
func (c ServiceCategory) String() string {
	if name, ok := getServiceCategoryStrings()[c]; ok {
		return name
	}
	return "UNKNOWN"
}

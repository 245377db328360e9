// Package guard provides the constructor-guard pattern used by domain value
// objects and aggregates. Embedding a ConstructorGuard in a struct makes it
// possible to detect zero-value instances that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a
// nil validation error, so that validation of an unconstructed object always
// fails with a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as created through its designated
// constructor. The zero value is "not constructed" and fails validation,
// which lets domain types reject direct struct literals.
//
// Example:
//
//	type Skills struct {
//	    vehicles []kernel.VehicleCategory
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewSkills(vehicles []kernel.VehicleCategory) (Skills, error) {
//	    if len(vehicles) == 0 {
//	        return Skills{}, errs.NewValueIsRequiredError("vehicles")
//	    }
//	    return Skills{vehicles: vehicles, guard: guard.NewConstructorGuard()}, nil
//	}
//
//	func (s Skills) Validate() error {
//	    return s.guard.Validate(ErrSkillsAreNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking the enclosing object as
// properly constructed. Call it from the object's constructor only.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the guarded object went through its constructor.
// Returns validationError (or ErrDefaultConstructorGuard if it is nil) for
// zero-value instances, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if !g.isConstructed {
		if validationError == nil {
			return ErrDefaultConstructorGuard
		}
		return validationError
	}
	return nil
}

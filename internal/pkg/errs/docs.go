// Package errs provides standardized error types for the dispatch engine.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping that is used throughout the application.
//
// The package defines one error type per failure kind the engine reports:
//   - ObjectNotFoundError: an entity id is unknown
//   - NotEligibleError: an actor fails an operation's preconditions
//     (unverified or unavailable provider, provider already assigned,
//     caller is not the record's owner)
//   - ConflictError: a state precondition was violated, including a lost
//     race; carries the status observed at failure time
//   - VersionIsInvalidError: an optimistic-concurrency write was rejected
//   - ValueIsRequiredError / ValueIsInvalidError / ValueIsOutOfRangeError:
//     malformed input rejected at the boundary
//
// Each type follows the same pattern:
//   - a sentinel error variable (e.g. ErrConflict) for errors.Is checks
//   - a struct carrying error details
//   - constructors with and without an underlying cause
//   - Error() for formatting and Unwrap() returning the sentinel
//
// All kinds are non-fatal and locally recoverable by the caller; handlers
// propagate them unchanged up to the HTTP layer, which maps each sentinel to
// a status code.
package errs

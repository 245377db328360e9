// Package services provides domain services that implement business logic
// spanning more than one aggregate.
//
// The package includes:
//   - GeoMatcher: pairs an eligible provider with the searching requests
//     within reach of their skills and location
//   - EscalationPolicy: widens a searching request's radius on a schedule
//     and times it out once the expansion budget is spent
//
// Both services are pure over in-memory aggregates; loading candidates and
// persisting the results is the application layer's job.
package services

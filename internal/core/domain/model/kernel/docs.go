// Package kernel provides the shared domain primitives of the dispatch
// engine: identifiers, geographic coordinates, and the closed category
// enumerations both requests and provider skills are expressed in.
//
// The package includes:
//   - UUID: validated unique identifiers for all aggregates
//   - GeoPoint: a validated latitude/longitude pair with great-circle
//     distance calculation (haversine, Earth radius 6371 km)
//   - VehicleCategory and ServiceCategory: closed enumerations with a
//     case-insensitive parse step, so normalization happens once at
//     ingestion instead of per comparison
//
// All types are immutable value objects created through constructors; the
// zero value of each fails validation.
package kernel

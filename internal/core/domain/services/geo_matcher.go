package services

import (
	"math"
	"sort"

	"roadside/internal/core/domain/model/provider"
	"roadside/internal/core/domain/model/request"
)

// Match pairs a searching request with the distance from the provider who
// matched it. Distances are rounded to two decimal places, so the value is
// directly presentable and comparable against whole-kilometer radii.
type Match struct {
	Request    *request.Request
	DistanceKm float64
}

// GeoMatcher is a domain service that selects the requests a given provider
// can serve right now. It is a pure function over in-memory aggregates; the
// caller is responsible for loading candidates and for running escalation
// beforehand so every radius is current.
//
// Matching rules:
//   - The provider must satisfy every acceptance precondition
//     (verified, available, located, unassigned)
//   - Only requests in SEARCHING status are considered
//   - The provider's skills must cover both the request's vehicle and
//     service category
//   - The great-circle distance between provider and requester, rounded to
//     two decimals, must not exceed the request's current search radius
//
// Example usage:
//
//	matcher := NewGeoMatcher()
//	matches, err := matcher.Match(mechanic, searchingRequests)
//	if err != nil {
//	    // the provider is not eligible to take work right now
//	    return
//	}
//	for _, m := range matches {
//	    fmt.Println(m.Request.ID(), m.DistanceKm)
//	}
type GeoMatcher struct{}

// NewGeoMatcher creates a new GeoMatcher instance.
func NewGeoMatcher() GeoMatcher {
	return GeoMatcher{}
}

// Match returns the candidate requests the provider can serve, ordered by
// distance (closest first, ties broken by request id for a stable order).
//
// Parameters:
//   - p: the provider looking for work (must pass EnsureCanAccept)
//   - requests: candidate requests, typically everything in SEARCHING status
//
// Returns:
//   - []Match: matched requests with rounded distances, closest first
//   - error: a NotEligibleError when the provider cannot take work,
//     or a validation error for unconstructed aggregates
//
// Requests that are not SEARCHING, outside the provider's skills, or beyond
// their own current search radius are skipped silently: an empty result is a
// normal answer, not an error.
func (m GeoMatcher) Match(p *provider.Provider, requests []*request.Request) ([]Match, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := p.EnsureCanAccept(); err != nil {
		return nil, err
	}

	providerLocation := *p.Location()
	skills := p.Skills()

	var matches []Match
	for _, r := range requests {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		if r.Status() != request.StatusSearching {
			continue
		}
		if !skills.CanServe(r.VehicleCategory(), r.ServiceCategory()) {
			continue
		}

		distanceKm, err := providerLocation.DistanceKmTo(r.RequesterLocation())
		if err != nil {
			return nil, err
		}
		distanceKm = roundKm(distanceKm)
		if distanceKm > r.SearchRadiusKm() {
			continue
		}

		matches = append(matches, Match{Request: r, DistanceKm: distanceKm})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].DistanceKm != matches[j].DistanceKm {
			return matches[i].DistanceKm < matches[j].DistanceKm
		}
		return matches[i].Request.ID().String() < matches[j].Request.ID().String()
	})

	return matches, nil
}

// roundKm rounds a distance to two decimal places (10 m resolution).
func roundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

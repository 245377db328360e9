package kernel

import (
	"errors"
	"fmt"
	"math"

	"roadside/internal/pkg/errs"
	"roadside/internal/pkg/guard"
)

const (
	// GeoPointMinLatitude is the minimum valid latitude in degrees.
	GeoPointMinLatitude = -90.0
	// GeoPointMaxLatitude is the maximum valid latitude in degrees.
	GeoPointMaxLatitude = 90.0
	// GeoPointMinLongitude is the minimum valid longitude in degrees.
	GeoPointMinLongitude = -180.0
	// GeoPointMaxLongitude is the maximum valid longitude in degrees.
	GeoPointMaxLongitude = 180.0

	// earthRadiusKm is the mean Earth radius used for great-circle distances.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an
// improperly initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable latitude/longitude pair in decimal degrees.
// The zero value is invalid and fails validation; use NewGeoPoint.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
//	if err != nil {
//	    // coordinate out of bounds
//	}
type GeoPoint struct {
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with validated coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(lat float64, lng float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(lat), point.setLongitude(lng)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks that the GeoPoint was created through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.lat
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.lng
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.6f,%.6f)", p.lat, p.lng)
}

// IsEqual compares two points for exact coordinate equality.
// Both points must be properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return p.lat == other.lat && p.lng == other.lng, nil
}

// DistanceKmTo computes the great-circle distance to another point in
// kilometers using the haversine formula:
//
//	a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlng/2)
//	d = 2·R·asin(√a)
//
// with R = 6371 km.
func (p GeoPoint) DistanceKmTo(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := degreesToRadians(p.lat)
	lat2 := degreesToRadians(other.lat)
	deltaLat := degreesToRadians(other.lat - p.lat)
	deltaLng := degreesToRadians(other.lng - p.lng)

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(a)), nil
}

func (p *GeoPoint) setLatitude(lat float64) error {
	if lat < GeoPointMinLatitude || lat > GeoPointMaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, GeoPointMinLatitude, GeoPointMaxLatitude)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLongitude(lng float64) error {
	if lng < GeoPointMinLongitude || lng > GeoPointMaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, GeoPointMinLongitude, GeoPointMaxLongitude)
	}
	p.lng = lng
	return nil
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

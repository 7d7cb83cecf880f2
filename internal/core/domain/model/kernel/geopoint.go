package kernel

import (
	"errors"
	"fmt"
	"math"

	"dronefleet/internal/pkg/errs"
	"dronefleet/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin float64 = -90
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax float64 = 90
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin float64 = -180
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax float64 = 180

	// EarthRadiusKm is the mean earth radius used by the spherical
	// great-circle approximation.
	EarthRadiusKm float64 = 6371

	// BatteryReserveFloor is the battery percentage that must remain after a
	// trip for the trip to be considered feasible. It is a fixed safety
	// margin, not configurable per call.
	BatteryReserveFloor float64 = 20.0

	minutesPerHour float64 = 60
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly
// initialized GeoPoint. GeoPoints must be created via NewGeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is an immutable value object representing a position on the earth
// surface in decimal degrees. The zero value is invalid and fails validation;
// use NewGeoPoint to create instances.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(10.7769, 106.7009)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(p) // Output: GeoPoint(10.776900,106.700900)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given coordinates.
// Latitude must lie within [LatitudeMin..LatitudeMax] and longitude within
// [LongitudeMin..LongitudeMax]; NaN is rejected. Returns a validation error
// if either coordinate is out of bounds.
func NewGeoPoint(latitude float64, longitude float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLatitude(latitude), point.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed via NewGeoPoint.
// The zero value fails this validation.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Latitude returns the latitude in decimal degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in decimal degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// String returns a human-readable representation in the format
// "GeoPoint(lat,lng)". Implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// IsEqual compares two points for exact coordinate equality.
// Both points must be properly constructed for the comparison to succeed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return p.latitude == other.latitude && p.longitude == other.longitude, nil
}

// DistanceKm calculates the great-circle distance in kilometers between two
// points using the haversine formula on a spherical-earth approximation with
// radius EarthRadiusKm. The result is symmetric and zero for identical
// points. Both points must be properly constructed.
//
// Example:
//
//	home, _ := kernel.NewGeoPoint(10.7769, 106.7009)
//	dest, _ := kernel.NewGeoPoint(10.8231, 106.6297)
//	d, _ := home.DistanceKm(dest) // d ≈ 9.3
func (p GeoPoint) DistanceKm(other GeoPoint) (float64, error) {
	if err := errors.Join(p.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	latA := degreesToRadians(p.latitude)
	latB := degreesToRadians(other.latitude)
	dLat := degreesToRadians(other.latitude - p.latitude)
	dLng := degreesToRadians(other.longitude - p.longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c, nil
}

// EtaMinutes estimates the travel time in whole minutes for covering
// distanceKm at speedKmh, rounded up. Returns a validation error when
// speedKmh is not positive or distanceKm is negative.
func EtaMinutes(distanceKm float64, speedKmh float64) (int, error) {
	if speedKmh <= 0 || math.IsNaN(speedKmh) {
		return 0, errs.NewValueIsInvalidError("speedKmh")
	}
	if distanceKm < 0 || math.IsNaN(distanceKm) {
		return 0, errs.NewValueIsInvalidError("distanceKm")
	}

	return int(math.Ceil(distanceKm / speedKmh * minutesPerHour)), nil
}

// BatteryConsumed estimates the battery percentage consumed over distanceKm
// using a linear consumption model.
func BatteryConsumed(distanceKm float64, consumptionPerKm float64) float64 {
	return distanceKm * consumptionPerKm
}

// HasSufficientBattery reports whether a drone with currentPercent battery
// can cover distanceKm and still land with at least BatteryReserveFloor
// percent remaining.
func HasSufficientBattery(currentPercent float64, distanceKm float64, consumptionPerKm float64) bool {
	return currentPercent-BatteryConsumed(distanceKm, consumptionPerKm) >= BatteryReserveFloor
}

// setLatitude sets the latitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers. Although mixing receiver types is generally not
// recommended, in this case we use pointer receivers for these private
// setters to enable self-encapsulated validation during object construction.
func (p *GeoPoint) setLatitude(latitude float64) error {
	if math.IsNaN(latitude) || latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}

	p.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
// Note: We intentionally use a pointer receiver here while other methods use
// value receivers. Although mixing receiver types is generally not
// recommended, in this case we use pointer receivers for these private
// setters to enable self-encapsulated validation during object construction.
func (p *GeoPoint) setLongitude(longitude float64) error {
	if math.IsNaN(longitude) || longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}

	p.longitude = longitude
	return nil
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

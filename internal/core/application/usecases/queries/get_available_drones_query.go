// Package queries contains read-side operations that bypass the domain
// aggregates and read the database directly into flat response models.
package queries

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"
	"dronefleet/internal/pkg/guard"
)

var (
	ErrGetAvailableDronesQueryIsNotConstructed = errors.New(
		"GetAvailableDronesQuery must be created via NewGetAvailableDronesQuery constructor",
	)
)

// GetAvailableDronesQuery retrieves the drones of a restaurant that can be
// offered for reservation: idle, active, and charged at or above the given
// minimum. Results come back battery-descending so dispatchers see the best
// candidate first.
//
// Example:
//
//	query, err := NewGetAvailableDronesQuery(restaurantID, 30)
//	if err != nil {
//	    return err
//	}
//	handler := NewGetAvailableDronesQueryHandler(db)
//
//	drones, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get available drones: %w", err)
//	}
//
//	for _, d := range drones {
//	    fmt.Printf("%s: %.1f%%\n", d.Name, d.BatteryPercent)
//	}
type GetAvailableDronesQuery struct {
	restaurantID      kernel.UUID
	minBatteryPercent float64
	guard             guard.ConstructorGuard
}

// NewGetAvailableDronesQuery creates a query for a restaurant's available
// drones. The minimum battery must lie in [0, 100].
func NewGetAvailableDronesQuery(
	restaurantID kernel.UUID,
	minBatteryPercent float64,
) (GetAvailableDronesQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetAvailableDronesQuery{}, errs.NewValueIsRequiredErrorWithCause("restaurantID", err)
	}
	if minBatteryPercent < 0 || minBatteryPercent > 100 {
		return GetAvailableDronesQuery{}, errs.NewValueIsOutOfRangeError(
			"minBatteryPercent", minBatteryPercent, 0, 100,
		)
	}

	return GetAvailableDronesQuery{
		restaurantID:      restaurantID,
		minBatteryPercent: minBatteryPercent,
		guard:             guard.NewConstructorGuard(),
	}, nil
}

// RestaurantID returns the restaurant whose drones are requested.
func (q GetAvailableDronesQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// MinBatteryPercent returns the battery floor applied to the candidates.
func (q GetAvailableDronesQuery) MinBatteryPercent() float64 {
	return q.minBatteryPercent
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAvailableDronesQueryIsNotConstructed if validation fails.
func (q GetAvailableDronesQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDronesQueryIsNotConstructed)
}

// GetAvailableDronesQueryResponse represents one reservable drone.
type GetAvailableDronesQueryResponse struct {
	ID              kernel.UUID
	Name            string
	BatteryPercent  float64
	CurrentPosition kernel.GeoPoint
	MaxPayloadKg    float64
	MaxSpeedKmh     float64
	TotalDeliveries int
}

// Package ports defines the repository, unit-of-work, event, and tracking
// contracts between the domain layer and infrastructure, enabling dependency
// inversion and testability.
package ports

import (
	"context"

	"dronefleet/internal/core/domain/model/drone"
	"dronefleet/internal/core/domain/model/kernel"
)

// DroneRepository defines the persistence contract for drone aggregates.
type DroneRepository interface {
	// Add persists a new drone aggregate to storage.
	// The drone must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *drone.Drone) error

	// Update persists changes to an existing drone aggregate.
	Update(ctx context.Context, aggregate *drone.Drone) error

	// Get retrieves a drone aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*drone.Drone, error)

	// GetForUpdate retrieves a drone aggregate under a row-level lock that
	// lasts until the surrounding transaction ends. Reservation is a
	// check-and-set on the Idle state; the lock serializes it per drone so
	// two concurrent reservations cannot both observe Idle. Must be called
	// inside an open unit of work.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*drone.Drone, error)

	// GetAvailable retrieves the drones of a restaurant that can be offered
	// for reservation: idle, active, battery at or above the given minimum,
	// ordered by battery descending with a stable tie-break.
	GetAvailable(ctx context.Context, restaurantID kernel.UUID, minBatteryPercent float64) ([]*drone.Drone, error)
}

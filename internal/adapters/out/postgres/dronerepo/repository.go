package dronerepo

import (
	"context"
	"errors"

	"dronefleet/internal/core/domain/model/drone"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormDroneRepository implements DroneRepository using GORM.
type GormDroneRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDroneRepository creates a new GORM drone repository.
func NewGormDroneRepository(db *gorm.DB, tracker aggregateTracker) *GormDroneRepository {
	return &GormDroneRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new drone to the database.
func (r *GormDroneRepository) Add(ctx context.Context, aggregate *drone.Drone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing drone to the database.
func (r *GormDroneRepository) Update(ctx context.Context, aggregate *drone.Drone) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Select all columns so cleared fields (current_order_id, is_active)
	// are written back instead of being skipped as zero values.
	result := r.db.WithContext(ctx).Model(&DroneDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a drone by ID.
func (r *GormDroneRepository) Get(ctx context.Context, id kernel.UUID) (*drone.Drone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DroneDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("drone", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetForUpdate retrieves a drone by ID under a row-level lock held until the
// surrounding transaction ends. Reservation is a check-and-set on the Idle
// state, so the lock serializes concurrent reservations per drone: the
// second caller blocks here and then observes the drone already reserved.
func (r *GormDroneRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*drone.Drone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DroneDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("drone", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAvailable retrieves the drones of a restaurant that can be offered for
// reservation: idle, active, and with battery at or above the given minimum.
// Results come back battery-descending with name as a stable tie-break, so
// callers try the best-charged drone first.
//
// Example:
//
//	candidates, err := repo.GetAvailable(ctx, restaurantID, 30.0)
//	if err != nil {
//		return fmt.Errorf("failed to get available drones: %w", err)
//	}
//	for _, d := range candidates {
//		fmt.Printf("Candidate: %s (%.1f%%)\n", d.Name(), d.BatteryPercent())
//	}
func (r *GormDroneRepository) GetAvailable(
	ctx context.Context,
	restaurantID kernel.UUID,
	minBatteryPercent float64,
) ([]*drone.Drone, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DroneDTO
	if err := r.db.WithContext(ctx).
		Where("restaurant_id = ? AND status = ? AND is_active AND battery_percent >= ?",
			restaurantID.Bytes(), int(drone.Idle), minBatteryPercent).
		Order("battery_percent DESC, name ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	drones := make([]*drone.Drone, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		drones = append(drones, d)
	}

	return drones, nil
}

package deliverylogrepo

import (
	"context"
	"errors"

	"dronefleet/internal/core/domain/model/deliverylog"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryLogRepository implements DeliveryLogRepository using GORM.
type GormDeliveryLogRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryLogRepository creates a new GORM delivery log repository.
func NewGormDeliveryLogRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryLogRepository {
	return &GormDeliveryLogRepository{
		db:      db,
		tracker: tracker,
	}
}

// openStatuses returns the non-terminal statuses; a record in one of them
// still accepts telemetry and transitions.
func openStatuses() []int {
	return []int{
		int(deliverylog.Preparing),
		int(deliverylog.InFlight),
		int(deliverylog.Arrived),
	}
}

// Add saves a new delivery log to the database.
func (r *GormDeliveryLogRepository) Add(ctx context.Context, aggregate *deliverylog.DeliveryLog) error {
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

// Update saves an existing delivery log to the database, including samples
// appended since the last save.
func (r *GormDeliveryLogRepository) Update(ctx context.Context, aggregate *deliverylog.DeliveryLog) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	// Use Session with FullSaveAssociations to upsert the GPS trail
	// alongside the record row.
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery log by ID.
func (r *GormDeliveryLogRepository) Get(ctx context.Context, id kernel.UUID) (*deliverylog.DeliveryLog, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryLogDTO
	if err := r.db.WithContext(ctx).
		Preload("Samples", sampleOrder).
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery log", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrder retrieves the most recent delivery log for an order. A record
// still waiting for its first sample has no started_at yet and sorts first.
func (r *GormDeliveryLogRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*deliverylog.DeliveryLog, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryLogDTO
	if err := r.db.WithContext(ctx).
		Preload("Samples", sampleOrder).
		Order("started_at DESC NULLS FIRST").
		First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery log", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByOrder retrieves the open (non-terminal) delivery log for an order.
// At most one exists at a time.
func (r *GormDeliveryLogRepository) GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*deliverylog.DeliveryLog, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryLogDTO
	if err := r.db.WithContext(ctx).
		Preload("Samples", sampleOrder).
		First(&dto, "order_id = ? AND status IN ?", orderID.Bytes(), openStatuses()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery log", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenByDrone retrieves the open (non-terminal) delivery log for a drone.
// At most one exists at a time.
func (r *GormDeliveryLogRepository) GetOpenByDrone(ctx context.Context, droneID kernel.UUID) (*deliverylog.DeliveryLog, error) {
	if err := droneID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryLogDTO
	if err := r.db.WithContext(ctx).
		Preload("Samples", sampleOrder).
		First(&dto, "drone_id = ? AND status IN ?", droneID.Bytes(), openStatuses()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery log", droneID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// sampleOrder keeps the preloaded GPS trail in append order.
func sampleOrder(db *gorm.DB) *gorm.DB {
	return db.Order("seq ASC")
}

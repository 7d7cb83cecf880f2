package ports

import (
	"context"

	"dronefleet/internal/core/domain/model/deliverylog"
	"dronefleet/internal/core/domain/model/kernel"
)

// DeliveryLogRepository defines the persistence contract for delivery log
// aggregates. One order and one drone each map to at most one open record at
// a time; the open-record lookups back that invariant.
type DeliveryLogRepository interface {
	// Add persists a new delivery log aggregate to storage.
	Add(ctx context.Context, aggregate *deliverylog.DeliveryLog) error

	// Update persists changes to an existing delivery log aggregate,
	// including samples appended since the last save.
	Update(ctx context.Context, aggregate *deliverylog.DeliveryLog) error

	// Get retrieves a delivery log aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*deliverylog.DeliveryLog, error)

	// GetByOrder retrieves the most recent delivery log for an order.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*deliverylog.DeliveryLog, error)

	// GetOpenByOrder retrieves the open (non-terminal) delivery log for an
	// order, or an ObjectNotFoundError when none exists.
	GetOpenByOrder(ctx context.Context, orderID kernel.UUID) (*deliverylog.DeliveryLog, error)

	// GetOpenByDrone retrieves the open (non-terminal) delivery log for a
	// drone, or an ObjectNotFoundError when none exists.
	GetOpenByDrone(ctx context.Context, droneID kernel.UUID) (*deliverylog.DeliveryLog, error)
}

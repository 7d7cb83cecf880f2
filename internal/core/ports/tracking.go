package ports

import (
	"time"

	"dronefleet/internal/core/domain/model/kernel"
)

// DronePositionUpdate is a live-tracking message broadcast per drone.
type DronePositionUpdate struct {
	DroneID        kernel.UUID
	Latitude       float64
	Longitude      float64
	BatteryPercent *float64
	SpeedKmh       *float64
	RecordedAt     time.Time
}

// OrderStatusUpdate is a live-tracking message broadcast per order on
// arrival and completion.
type OrderStatusUpdate struct {
	OrderID    kernel.UUID
	DroneID    kernel.UUID
	Status     string
	OccurredAt time.Time
}

// TrackingPublisher pushes live-tracking messages to external subscribers.
// Publication must never block the telemetry path: a slow subscriber drops
// messages instead of applying backpressure.
type TrackingPublisher interface {
	PublishDronePosition(update DronePositionUpdate)
	PublishOrderStatus(update OrderStatusUpdate)
}

// ReturnScheduler records when a drone is due to finish its simulated
// flight home. The event consumer records the due time and returns
// immediately; a periodic job drains the schedule and performs the
// transition, so a single drone's transit delay never stalls the
// subscription.
type ReturnScheduler interface {
	// Schedule records that the drone should land at the given time.
	// Rescheduling an already scheduled drone moves its due time.
	Schedule(droneID kernel.UUID, due time.Time)

	// PopDue removes and returns the drones whose due time has passed.
	PopDue(now time.Time) []kernel.UUID
}

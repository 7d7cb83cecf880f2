package ports

import (
	"context"
	"time"

	"dronefleet/internal/core/domain/model/kernel"
)

// Event-bus channel names, used as routing keys.
const (
	// ChannelDroneEvents carries commands for drones, today only the
	// return-to-base instruction.
	ChannelDroneEvents = "drone-events"
	// ChannelDeliveryEvents carries delivery progress signals from the
	// fleet toward the order coordinator.
	ChannelDeliveryEvents = "delivery-events"
	// ChannelOrderConfirmed carries the stock-decrement event for the
	// external inventory collaborator.
	ChannelOrderConfirmed = "order-confirmed"
	// ChannelPaymentEvents carries the opaque payment-confirmed signal.
	ChannelPaymentEvents = "payment-events"
)

// Event is a message published on the event bus.
// Delivery is at-least-once and unordered across channels, with no
// transactional coupling to the local database write that precedes
// publication; consumers must be idempotent.
type Event interface {
	// Channel returns the routing key the event is published on.
	Channel() string
	// EventType returns the discriminator carried in the JSON payload.
	EventType() string
	// Key returns the partition key for per-entity ordering.
	Key() string
}

// DroneReturnToBaseEvent tells a drone to physically fly home after the
// order coordinator finished reconciliation. The consumer never executes the
// simulated transit inline; it schedules the return instead.
type DroneReturnToBaseEvent struct {
	DroneID kernel.UUID
	OrderID kernel.UUID
}

func (DroneReturnToBaseEvent) Channel() string   { return ChannelDroneEvents }
func (DroneReturnToBaseEvent) EventType() string { return "DroneReturnToBase" }
func (e DroneReturnToBaseEvent) Key() string     { return e.DroneID.String() }

// DroneArrivedEvent signals that the drone reached the order destination.
type DroneArrivedEvent struct {
	OrderID   kernel.UUID
	DroneID   kernel.UUID
	Timestamp time.Time
}

func (DroneArrivedEvent) Channel() string   { return ChannelDeliveryEvents }
func (DroneArrivedEvent) EventType() string { return "DroneArrived" }
func (e DroneArrivedEvent) Key() string     { return e.OrderID.String() }

// DeliveryCompletedEvent signals that the delivery record was finalized.
type DeliveryCompletedEvent struct {
	OrderID kernel.UUID
}

func (DeliveryCompletedEvent) Channel() string   { return ChannelDeliveryEvents }
func (DeliveryCompletedEvent) EventType() string { return "DeliveryCompleted" }
func (e DeliveryCompletedEvent) Key() string     { return e.OrderID.String() }

// OrderConfirmedItem is one stock-decrement line of an OrderConfirmedEvent.
type OrderConfirmedItem struct {
	ProductID kernel.UUID
	Quantity  int
}

// OrderConfirmedEvent is the stock-decrement notification for the external
// inventory collaborator, published when an order completes.
type OrderConfirmedEvent struct {
	OrderID kernel.UUID
	Items   []OrderConfirmedItem
}

func (OrderConfirmedEvent) Channel() string   { return ChannelOrderConfirmed }
func (OrderConfirmedEvent) EventType() string { return "OrderConfirmed" }
func (e OrderConfirmedEvent) Key() string     { return e.OrderID.String() }

// PaymentConfirmedEvent is the opaque signal that an order's payment went
// through. The payment provider protocol stays outside the system.
type PaymentConfirmedEvent struct {
	OrderID kernel.UUID
}

func (PaymentConfirmedEvent) Channel() string   { return ChannelPaymentEvents }
func (PaymentConfirmedEvent) EventType() string { return "PaymentConfirmed" }
func (e PaymentConfirmedEvent) Key() string     { return e.OrderID.String() }

// EventPublisher publishes events on the bus.
// Publication is best-effort: a failure is logged by the caller and never
// rolls back the already-committed local state change.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

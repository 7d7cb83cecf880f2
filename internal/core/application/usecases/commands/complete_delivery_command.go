package commands

import (
	"errors"
	"time"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand signals that a drone handed the order over and its
// flight record should be reconciled.
type CompleteDeliveryCommand struct { //nolint:recvcheck //using for validation
	droneID    kernel.UUID
	orderID    kernel.UUID
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewCompleteDeliveryCommand creates a command to finish the delivery of the
// given order by the given drone at the given moment.
func NewCompleteDeliveryCommand(
	droneID kernel.UUID,
	orderID kernel.UUID,
	occurredAt time.Time,
) (CompleteDeliveryCommand, error) {
	if err := errors.Join(droneID.Validate(), orderID.Validate()); err != nil {
		return CompleteDeliveryCommand{}, err
	}
	if occurredAt.IsZero() {
		return CompleteDeliveryCommand{}, ErrOccurredAtIsRequired
	}

	return CompleteDeliveryCommand{
		droneID:    droneID,
		orderID:    orderID,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCompleteDeliveryCommandIsNotConstructed if validation fails.
func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

// DroneID returns the delivering drone ID from the command.
func (c CompleteDeliveryCommand) DroneID() kernel.UUID {
	return c.droneID
}

// OrderID returns the delivered order ID from the command.
func (c CompleteDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// OccurredAt returns the hand-over timestamp from the command.
func (c CompleteDeliveryCommand) OccurredAt() time.Time {
	return c.occurredAt
}

package commands

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/guard"
)

var ErrMarkDeliveredCommandIsNotConstructed = errors.New(
	"MarkDeliveredCommand must be created via NewMarkDeliveredCommand constructor",
)

// MarkDeliveredCommand applies a delivery-completed signal from the fleet to
// the order.
type MarkDeliveredCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveredCommand creates a command marking the given order delivered.
func NewMarkDeliveredCommand(orderID kernel.UUID) (MarkDeliveredCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkDeliveredCommand{}, err
	}

	return MarkDeliveredCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkDeliveredCommandIsNotConstructed if validation fails.
func (c MarkDeliveredCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveredCommandIsNotConstructed)
}

// OrderID returns the delivered order ID from the command.
func (c MarkDeliveredCommand) OrderID() kernel.UUID {
	return c.orderID
}

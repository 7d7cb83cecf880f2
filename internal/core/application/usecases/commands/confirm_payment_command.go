package commands

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/guard"
)

var ErrConfirmPaymentCommandIsNotConstructed = errors.New(
	"ConfirmPaymentCommand must be created via NewConfirmPaymentCommand constructor",
)

// ConfirmPaymentCommand carries the opaque payment-confirmed signal for an
// order. The payment provider protocol stays outside the system; only the
// order ID crosses the boundary.
type ConfirmPaymentCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewConfirmPaymentCommand creates a command confirming payment of the given order.
func NewConfirmPaymentCommand(orderID kernel.UUID) (ConfirmPaymentCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmPaymentCommand{}, err
	}

	return ConfirmPaymentCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrConfirmPaymentCommandIsNotConstructed if validation fails.
func (c ConfirmPaymentCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPaymentCommandIsNotConstructed)
}

// OrderID returns the paid order ID from the command.
func (c ConfirmPaymentCommand) OrderID() kernel.UUID {
	return c.orderID
}

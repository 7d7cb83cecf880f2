package commands

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/domain/model/order"
	"dronefleet/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order to a new
// status on behalf of a requester acting in a role. The role decides which
// transitions are permitted.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	target    order.Status
	requester order.Role

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a command to move the given order to
// the target status as the given role.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	requester order.Role,
) (UpdateOrderStatusCommand, error) {
	if err := errors.Join(
		orderID.Validate(),
		target.Validate(),
		requester.Validate(),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID:   orderID,
		target:    target,
		requester: requester,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status from the command.
func (c UpdateOrderStatusCommand) Target() order.Status {
	return c.target
}

// Requester returns the acting role from the command.
func (c UpdateOrderStatusCommand) Requester() order.Role {
	return c.requester
}

package commands

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents a request to reserve a drone for an order
// and open its flight record. The drone is either named by the caller or
// left to the handler to pick.
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	droneID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command that lets the handler pick the
// drone for the given order.
func NewAssignOrderCommand(orderID kernel.UUID) (AssignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// NewAssignOrderCommandForDrone creates a command to reserve the named
// drone for the given order.
func NewAssignOrderCommandForDrone(orderID, droneID kernel.UUID) (AssignOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return AssignOrderCommand{}, err
	}
	if err := droneID.Validate(); err != nil {
		return AssignOrderCommand{}, err
	}

	return AssignOrderCommand{
		orderID: orderID,
		droneID: &droneID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignOrderCommandIsNotConstructed if validation fails.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order ID from the command.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DroneID returns the requested drone ID, or nil when the handler should
// pick one.
func (c AssignOrderCommand) DroneID() *kernel.UUID {
	return c.droneID
}

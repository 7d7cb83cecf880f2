package commands

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/guard"
)

var ErrMarkMaintenanceCommandIsNotConstructed = errors.New(
	"MarkMaintenanceCommand must be created via NewMarkMaintenanceCommand constructor",
)

// MarkMaintenanceCommand takes a drone out of rotation on behalf of its
// owning operator.
type MarkMaintenanceCommand struct { //nolint:recvcheck //using for validation
	droneID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkMaintenanceCommand creates a command to ground the given drone.
func NewMarkMaintenanceCommand(droneID, requesterID kernel.UUID) (MarkMaintenanceCommand, error) {
	if err := errors.Join(droneID.Validate(), requesterID.Validate()); err != nil {
		return MarkMaintenanceCommand{}, err
	}

	return MarkMaintenanceCommand{
		droneID:     droneID,
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkMaintenanceCommand) Validate() error {
	return c.guard.Validate(ErrMarkMaintenanceCommandIsNotConstructed)
}

// DroneID returns the drone ID from the command.
func (c MarkMaintenanceCommand) DroneID() kernel.UUID {
	return c.droneID
}

// RequesterID returns the acting operator ID from the command.
func (c MarkMaintenanceCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

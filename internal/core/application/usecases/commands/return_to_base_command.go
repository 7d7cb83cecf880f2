package commands

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/guard"
)

var ErrReturnToBaseCommandIsNotConstructed = errors.New(
	"ReturnToBaseCommand must be created via NewReturnToBaseCommand constructor",
)

// ReturnToBaseCommand lands a returning drone at its home position. Issued
// by the return job once the simulated transit delay has elapsed.
type ReturnToBaseCommand struct { //nolint:recvcheck //using for validation
	droneID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReturnToBaseCommand creates a command to land the given drone at home.
func NewReturnToBaseCommand(droneID kernel.UUID) (ReturnToBaseCommand, error) {
	if err := droneID.Validate(); err != nil {
		return ReturnToBaseCommand{}, err
	}

	return ReturnToBaseCommand{
		droneID: droneID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReturnToBaseCommand) Validate() error {
	return c.guard.Validate(ErrReturnToBaseCommandIsNotConstructed)
}

// DroneID returns the landing drone ID from the command.
func (c ReturnToBaseCommand) DroneID() kernel.UUID {
	return c.droneID
}

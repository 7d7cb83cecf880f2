package commands

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/guard"
)

var ErrMarkReadyCommandIsNotConstructed = errors.New(
	"MarkReadyCommand must be created via NewMarkReadyCommand constructor",
)

// MarkReadyCommand puts a maintained drone back into rotation on behalf of
// its owning operator.
type MarkReadyCommand struct { //nolint:recvcheck //using for validation
	droneID     kernel.UUID
	requesterID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkReadyCommand creates a command to return the given drone to service.
func NewMarkReadyCommand(droneID, requesterID kernel.UUID) (MarkReadyCommand, error) {
	if err := errors.Join(droneID.Validate(), requesterID.Validate()); err != nil {
		return MarkReadyCommand{}, err
	}

	return MarkReadyCommand{
		droneID:     droneID,
		requesterID: requesterID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyCommandIsNotConstructed)
}

// DroneID returns the drone ID from the command.
func (c MarkReadyCommand) DroneID() kernel.UUID {
	return c.droneID
}

// RequesterID returns the acting operator ID from the command.
func (c MarkReadyCommand) RequesterID() kernel.UUID {
	return c.requesterID
}

package commands

import (
	"errors"
	"time"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/guard"
)

var (
	ErrMarkArrivedCommandIsNotConstructed = errors.New(
		"MarkArrivedCommand must be created via NewMarkArrivedCommand constructor",
	)
	ErrOccurredAtIsRequired = errors.New("occurredAt is required")
)

// MarkArrivedCommand signals that a drone reached the order destination.
type MarkArrivedCommand struct { //nolint:recvcheck //using for validation
	droneID    kernel.UUID
	occurredAt time.Time

	guard guard.ConstructorGuard
}

// NewMarkArrivedCommand creates a command recording the arrival of the given
// drone at the given moment.
func NewMarkArrivedCommand(droneID kernel.UUID, occurredAt time.Time) (MarkArrivedCommand, error) {
	if err := droneID.Validate(); err != nil {
		return MarkArrivedCommand{}, err
	}
	if occurredAt.IsZero() {
		return MarkArrivedCommand{}, ErrOccurredAtIsRequired
	}

	return MarkArrivedCommand{
		droneID:    droneID,
		occurredAt: occurredAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrMarkArrivedCommandIsNotConstructed if validation fails.
func (c MarkArrivedCommand) Validate() error {
	return c.guard.Validate(ErrMarkArrivedCommandIsNotConstructed)
}

// DroneID returns the arriving drone ID from the command.
func (c MarkArrivedCommand) DroneID() kernel.UUID {
	return c.droneID
}

// OccurredAt returns the arrival timestamp from the command.
func (c MarkArrivedCommand) OccurredAt() time.Time {
	return c.occurredAt
}

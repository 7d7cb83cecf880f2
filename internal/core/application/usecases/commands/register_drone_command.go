package commands

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/guard"
)

var (
	ErrRegisterDroneCommandIsNotConstructed = errors.New(
		"RegisterDroneCommand must be created via NewRegisterDroneCommand constructor",
	)
	ErrNameIsRequired      = errors.New("name is required")
	ErrMaxPayloadIsInvalid = errors.New("max payload must be greater than 0")
	ErrMaxSpeedIsInvalid   = errors.New("max speed must be greater than 0")
)

// RegisterDroneCommand represents a request to register a new drone for a
// restaurant. Encapsulates all data needed to create a drone entity with its
// home position and flight capabilities.
//
// Example:
//
//	home, _ := kernel.NewGeoPoint(10.7769, 106.7009)
//	cmd, err := NewRegisterDroneCommand(restaurantID, ownerID, "DRN-7", home, 2.5, 60)
//	if err != nil {
//	    return fmt.Errorf("invalid drone data: %w", err)
//	}
//
//	handler := NewRegisterDroneCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to register drone: %w", err)
//	}
//	fmt.Printf("Registered drone with ID: %s", cmd.DroneID())
type RegisterDroneCommand struct { //nolint:recvcheck //using for validation
	droneID      kernel.UUID
	restaurantID kernel.UUID
	ownerID      kernel.UUID
	name         string
	homePosition kernel.GeoPoint
	maxPayloadKg float64
	maxSpeedKmh  float64

	guard guard.ConstructorGuard
}

// NewRegisterDroneCommand creates a command to register a new drone.
// Automatically generates a unique ID for the drone.
// Validates identifiers, the home position, the name, and that payload and
// speed are positive.
func NewRegisterDroneCommand(
	restaurantID kernel.UUID,
	ownerID kernel.UUID,
	name string,
	homePosition kernel.GeoPoint,
	maxPayloadKg float64,
	maxSpeedKmh float64,
) (RegisterDroneCommand, error) {
	command := RegisterDroneCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDroneID(kernel.NewUUID()),
		command.setRestaurantID(restaurantID),
		command.setOwnerID(ownerID),
		command.setName(name),
		command.setHomePosition(homePosition),
		command.setMaxPayload(maxPayloadKg),
		command.setMaxSpeed(maxSpeedKmh),
	); err != nil {
		return RegisterDroneCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRegisterDroneCommandIsNotConstructed if validation fails.
func (c RegisterDroneCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDroneCommandIsNotConstructed)
}

// DroneID returns the generated drone ID from the command.
func (c RegisterDroneCommand) DroneID() kernel.UUID {
	return c.droneID
}

// RestaurantID returns the restaurant ID from the command.
func (c RegisterDroneCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// OwnerID returns the owning operator ID from the command.
func (c RegisterDroneCommand) OwnerID() kernel.UUID {
	return c.ownerID
}

// Name returns the drone name from the command.
func (c RegisterDroneCommand) Name() string {
	return c.name
}

// HomePosition returns the drone home position from the command.
func (c RegisterDroneCommand) HomePosition() kernel.GeoPoint {
	return c.homePosition
}

// MaxPayloadKg returns the payload capacity from the command.
func (c RegisterDroneCommand) MaxPayloadKg() float64 {
	return c.maxPayloadKg
}

// MaxSpeedKmh returns the cruise speed from the command.
func (c RegisterDroneCommand) MaxSpeedKmh() float64 {
	return c.maxSpeedKmh
}

func (c *RegisterDroneCommand) setDroneID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.droneID = id
	return nil
}

func (c *RegisterDroneCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	c.restaurantID = restaurantID
	return nil
}

func (c *RegisterDroneCommand) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	c.ownerID = ownerID
	return nil
}

func (c *RegisterDroneCommand) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterDroneCommand) setHomePosition(homePosition kernel.GeoPoint) error {
	if err := homePosition.Validate(); err != nil {
		return err
	}

	c.homePosition = homePosition
	return nil
}

func (c *RegisterDroneCommand) setMaxPayload(maxPayloadKg float64) error {
	if maxPayloadKg <= 0 {
		return ErrMaxPayloadIsInvalid
	}

	c.maxPayloadKg = maxPayloadKg
	return nil
}

func (c *RegisterDroneCommand) setMaxSpeed(maxSpeedKmh float64) error {
	if maxSpeedKmh <= 0 {
		return ErrMaxSpeedIsInvalid
	}

	c.maxSpeedKmh = maxSpeedKmh
	return nil
}

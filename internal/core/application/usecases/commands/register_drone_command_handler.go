package commands

import (
	"context"

	"dronefleet/internal/core/domain/model/drone"
)

// RegisterDroneCommandHandler handles the business logic for drone registration.
// Creates and persists new drone entities at their home position with a full
// battery.
//
// Example:
//
//	handler := NewRegisterDroneCommandHandler(uowFactory)
//	home, _ := kernel.NewGeoPoint(10.7769, 106.7009)
//	cmd, _ := NewRegisterDroneCommand(restaurantID, ownerID, "DRN-7", home, 2.5, 60)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("drone registration failed: %w", err)
//	}
type RegisterDroneCommandHandler struct {
	uowFactory DroneUoWFactory
}

// NewRegisterDroneCommandHandler creates a handler for drone registration.
// Requires a DroneUoWFactory for transactional persistence operations.
func NewRegisterDroneCommandHandler(uowFactory DroneUoWFactory) RegisterDroneCommandHandler {
	return RegisterDroneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the drone registration command.
// Creates a new drone entity and persists it within a transaction.
// Automatically rolls back on any error to prevent partial data.
func (h *RegisterDroneCommandHandler) Handle(ctx context.Context, cmd RegisterDroneCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	droneRepo := uow.DroneRepository()
	droneEntity, err := drone.NewDrone(
		cmd.DroneID(),
		cmd.RestaurantID(),
		cmd.OwnerID(),
		cmd.Name(),
		cmd.HomePosition(),
		cmd.MaxPayloadKg(),
		cmd.MaxSpeedKmh(),
	)
	if err != nil {
		return err
	}

	if err = droneRepo.Add(ctx, droneEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

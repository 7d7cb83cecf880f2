package commands

import (
	"context"
	"errors"

	"dronefleet/internal/pkg/errs"
)

var ErrNoDroneFound = errors.New("no drone found")

// MarkMaintenanceCommandHandler grounds a drone for maintenance.
// Only the owning operator may do this, and not while the drone is flying
// an order.
type MarkMaintenanceCommandHandler struct {
	uowFactory DroneUoWFactory
}

// NewMarkMaintenanceCommandHandler creates a handler for maintenance requests.
func NewMarkMaintenanceCommandHandler(uowFactory DroneUoWFactory) MarkMaintenanceCommandHandler {
	return MarkMaintenanceCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the maintenance request.
func (h *MarkMaintenanceCommandHandler) Handle(ctx context.Context, cmd MarkMaintenanceCommand) error {
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

	droneEntity, err := droneRepo.GetForUpdate(ctx, cmd.DroneID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoDroneFound
	}
	if err != nil {
		return err
	}

	if err = droneEntity.MarkMaintenance(cmd.RequesterID()); err != nil {
		return err
	}

	if err = droneRepo.Update(ctx, droneEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

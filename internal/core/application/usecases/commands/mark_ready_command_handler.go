package commands

import (
	"context"
	"errors"

	"dronefleet/internal/pkg/errs"
)

// MarkReadyCommandHandler returns a maintained drone to service.
// Only the owning operator may do this.
type MarkReadyCommandHandler struct {
	uowFactory DroneUoWFactory
}

// NewMarkReadyCommandHandler creates a handler for ready requests.
func NewMarkReadyCommandHandler(uowFactory DroneUoWFactory) MarkReadyCommandHandler {
	return MarkReadyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the ready request.
func (h *MarkReadyCommandHandler) Handle(ctx context.Context, cmd MarkReadyCommand) error {
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

	if err = droneEntity.MarkReady(cmd.RequesterID()); err != nil {
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

package commands

import (
	"context"
	"errors"

	"dronefleet/internal/pkg/errs"
)

// ReturnToBaseCommandHandler lands a returning drone: the drone snaps to its
// home position and becomes idle, ready for the next reservation.
type ReturnToBaseCommandHandler struct {
	uowFactory DroneUoWFactory
}

// NewReturnToBaseCommandHandler creates a handler for return-to-base landings.
func NewReturnToBaseCommandHandler(uowFactory DroneUoWFactory) ReturnToBaseCommandHandler {
	return ReturnToBaseCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the landing.
// A drone that is no longer Returning (already released, grounded, or
// re-reserved) fails with a state conflict; the caller decides whether that
// matters.
func (h *ReturnToBaseCommandHandler) Handle(ctx context.Context, cmd ReturnToBaseCommand) error {
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

	if err = droneEntity.ReturnToBase(); err != nil {
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

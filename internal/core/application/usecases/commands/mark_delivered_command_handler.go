package commands

import (
	"context"
	"errors"

	"dronefleet/internal/pkg/errs"
)

// MarkDeliveredCommandHandler moves an order to delivered when the fleet
// reports the hand-over. Idempotent under event redelivery: an order that is
// already delivered or terminal is left untouched.
type MarkDeliveredCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewMarkDeliveredCommandHandler creates a handler for delivery-completed signals.
func NewMarkDeliveredCommandHandler(uowFactory OrderUoWFactory) MarkDeliveredCommandHandler {
	return MarkDeliveredCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the delivery-completed signal.
func (h *MarkDeliveredCommandHandler) Handle(ctx context.Context, cmd MarkDeliveredCommand) error {
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

	orderRepo := uow.OrderRepository()

	orderEntity, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOrderFound
	}
	if err != nil {
		return err
	}

	if err = orderEntity.MarkDelivered(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

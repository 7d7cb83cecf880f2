package commands

import (
	"context"

	"dronefleet/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for placing orders.
// Creates and persists new order entities in the pending/unpaid state.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order placement.
// Requires an OrderUoWFactory for transactional persistence operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Creates a new order entity and persists it within a transaction.
// Automatically rolls back on any error to prevent partial data.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
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
	orderEntity, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.RestaurantID(),
		cmd.Destination(),
		cmd.DestinationAddress(),
		cmd.AmountCents(),
		cmd.Items(),
	)
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, orderEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

package commands

import (
	"context"
	"errors"

	"dronefleet/internal/core/domain/model/order"
	"dronefleet/internal/pkg/errs"
)

// ConfirmPaymentCommandHandler applies the payment-confirmed signal.
// The payment becomes paid and a pending order advances to confirmed.
// Idempotent under event redelivery: an order that is already paid is left
// untouched with a no-op success.
type ConfirmPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmPaymentCommandHandler creates a handler for payment confirmations.
func NewConfirmPaymentCommandHandler(uowFactory OrderUoWFactory) ConfirmPaymentCommandHandler {
	return ConfirmPaymentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the payment confirmation.
func (h *ConfirmPaymentCommandHandler) Handle(ctx context.Context, cmd ConfirmPaymentCommand) error {
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

	if orderEntity.PaymentStatus() == order.PaymentPaid {
		return nil
	}

	if err = orderEntity.ConfirmPayment(); err != nil {
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

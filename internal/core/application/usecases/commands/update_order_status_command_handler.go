package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/core/domain/model/order"
	"dronefleet/internal/core/domain/services"
	"dronefleet/internal/core/ports"
	"dronefleet/internal/pkg/errs"
)

// UpdateOrderStatusCommandHandler moves orders through their lifecycle.
//
// The status change itself is transactional. Completion additionally
// triggers the fleet hand-back: the stock-decrement event for the inventory
// collaborator, the drone release, and the return-to-base instruction. Those
// side effects run after commit and are best-effort: a failure is logged
// and the completed order stands; redelivered events and the idempotent
// release reconcile the fleet later.
type UpdateOrderStatusCommandHandler struct {
	uowFactory FleetUoWFactory
	publisher  ports.EventPublisher
	planner    services.FlightPlanner
}

// NewUpdateOrderStatusCommandHandler creates a handler for order status changes.
func NewUpdateOrderStatusCommandHandler(
	uowFactory FleetUoWFactory,
	publisher ports.EventPublisher,
	planner services.FlightPlanner,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		planner:    planner,
	}
}

// Handle processes the status change command.
// Cancelling an order with a flight in progress closes the flight record
// and releases the drone within the same transaction.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) error {
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

	if err = orderEntity.ChangeStatus(cmd.Target(), cmd.Requester()); err != nil {
		return err
	}

	if cmd.Target() == order.Cancelled {
		if err = h.abortFlight(ctx, uow, orderEntity); err != nil {
			return err
		}
	}

	if err = orderRepo.Update(ctx, orderEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.Target() == order.Completed {
		h.handBackFleet(ctx, orderEntity)
	}

	return nil
}

// abortFlight closes the open flight record of a cancelled order and puts
// its drone back into rotation, inside the caller's transaction.
func (h *UpdateOrderStatusCommandHandler) abortFlight(
	ctx context.Context,
	uow FleetUoW,
	orderEntity *order.Order,
) error {
	logRepo := uow.DeliveryLogRepository()

	logEntity, err := logRepo.GetOpenByOrder(ctx, orderEntity.ID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if err = logEntity.Cancel(time.Now()); err != nil {
		return err
	}

	if err = logRepo.Update(ctx, logEntity); err != nil {
		return err
	}

	droneRepo := uow.DroneRepository()

	droneEntity, err := droneRepo.GetForUpdate(ctx, logEntity.DroneID())
	if err != nil {
		return err
	}

	if err = droneEntity.ReleaseToIdle(); err != nil {
		return err
	}

	return droneRepo.Update(ctx, droneEntity)
}

// handBackFleet runs the post-completion side effects: the stock-decrement
// notification, the idempotent drone release in its own transaction, and
// the return-to-base instruction.
func (h *UpdateOrderStatusCommandHandler) handBackFleet(ctx context.Context, orderEntity *order.Order) {
	event := ports.OrderConfirmedEvent{
		OrderID: orderEntity.ID(),
		Items:   confirmedItems(orderEntity),
	}
	if err := h.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish stock decrement",
			"orderID", orderEntity.ID().String(), "error", err)
	}

	droneID := orderEntity.DroneID()
	if droneID == nil {
		slog.WarnContext(ctx, "completed order has no drone to hand back",
			"orderID", orderEntity.ID().String())
		return
	}

	if err := h.releaseDrone(ctx, *droneID); err != nil {
		slog.WarnContext(ctx, "failed to release drone after completion",
			"droneID", droneID.String(), "orderID", orderEntity.ID().String(), "error", err)
	}

	returnEvent := ports.DroneReturnToBaseEvent{DroneID: *droneID, OrderID: orderEntity.ID()}
	if err := h.publisher.Publish(ctx, returnEvent); err != nil {
		slog.WarnContext(ctx, "failed to publish return-to-base",
			"droneID", droneID.String(), "orderID", orderEntity.ID().String(), "error", err)
	}
}

// releaseDrone puts the drone back into rotation and closes its open
// flight record in the same transaction, so the drone is not blocked from
// the next assignment by a record the complete-delivery flow never saw.
func (h *UpdateOrderStatusCommandHandler) releaseDrone(ctx context.Context, droneID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	droneRepo := uow.DroneRepository()

	droneEntity, err := droneRepo.GetForUpdate(ctx, droneID)
	if err != nil {
		return err
	}

	if err = droneEntity.ReleaseToIdle(); err != nil {
		return err
	}

	if err = droneRepo.Update(ctx, droneEntity); err != nil {
		return err
	}

	if err = h.closeOpenFlight(ctx, uow, droneID); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

// closeOpenFlight finalizes whatever flight record the released drone still
// has open. A record that never took off cannot be completed, so it is
// cancelled instead.
func (h *UpdateOrderStatusCommandHandler) closeOpenFlight(
	ctx context.Context,
	uow FleetUoW,
	droneID kernel.UUID,
) error {
	logRepo := uow.DeliveryLogRepository()

	logEntity, err := logRepo.GetOpenByDrone(ctx, droneID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	now := time.Now()
	if err = logEntity.Complete(h.planner.ConsumptionPerKm(), now); err != nil {
		if !errors.Is(err, errs.ErrStateConflict) {
			return err
		}
		if err = logEntity.Cancel(now); err != nil {
			return err
		}
	}

	return logRepo.Update(ctx, logEntity)
}

func confirmedItems(orderEntity *order.Order) []ports.OrderConfirmedItem {
	items := orderEntity.Items()
	confirmed := make([]ports.OrderConfirmedItem, 0, len(items))
	for _, item := range items {
		confirmed = append(confirmed, ports.OrderConfirmedItem{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
		})
	}
	return confirmed
}

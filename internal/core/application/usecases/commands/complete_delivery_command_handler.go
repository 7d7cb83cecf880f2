package commands

import (
	"context"
	"errors"
	"log/slog"

	"dronefleet/internal/core/domain/services"
	"dronefleet/internal/core/ports"
	"dronefleet/internal/pkg/errs"
)

var ErrDeliveryOrderMismatch = errors.New("open delivery belongs to a different order")

// CompleteDeliveryCommandHandler reconciles a finished delivery.
//
// The flight record is closed with the actually flown distance (summed over
// the GPS trail), the drone drops its order reference, consumes battery for
// the flown distance, and turns home. Both writes happen in one
// transaction; the completion event goes out after commit.
type CompleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	planner    services.FlightPlanner
	publisher  ports.EventPublisher
	tracker    ports.TrackingPublisher
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
// The FlightPlanner supplies the fleet-wide battery consumption rate used
// for reconciliation.
func NewCompleteDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	planner services.FlightPlanner,
	publisher ports.EventPublisher,
	tracker ports.TrackingPublisher,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		planner:    planner,
		publisher:  publisher,
		tracker:    tracker,
	}
}

// Handle processes the completion signal.
// Returns ErrNoOpenDeliveryFound when the drone has no open flight record
// and ErrDeliveryOrderMismatch when the open record belongs to another
// order. The DeliveryCompleted publication is best-effort: a broker failure
// is logged and the committed state stands; the order coordinator catches
// up on redelivery.
func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
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
	logRepo := uow.DeliveryLogRepository()

	logEntity, err := logRepo.GetOpenByDrone(ctx, cmd.DroneID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOpenDeliveryFound
	}
	if err != nil {
		return err
	}

	if !logEntity.OrderID().IsEqual(cmd.OrderID()) {
		return ErrDeliveryOrderMismatch
	}

	consumptionPerKm := h.planner.ConsumptionPerKm()
	if err = logEntity.Complete(consumptionPerKm, cmd.OccurredAt()); err != nil {
		return err
	}

	droneEntity, err := droneRepo.GetForUpdate(ctx, cmd.DroneID())
	if err != nil {
		return err
	}

	if err = droneEntity.CompleteDelivery(*logEntity.ActualDistanceKm(), consumptionPerKm); err != nil {
		return err
	}

	if err = logRepo.Update(ctx, logEntity); err != nil {
		return err
	}

	if err = droneRepo.Update(ctx, droneEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.publisher.Publish(ctx, ports.DeliveryCompletedEvent{OrderID: cmd.OrderID()}); err != nil {
		slog.WarnContext(ctx, "failed to publish delivery completion",
			"orderID", cmd.OrderID().String(), "error", err)
	}

	h.tracker.PublishOrderStatus(ports.OrderStatusUpdate{
		OrderID:    cmd.OrderID(),
		DroneID:    cmd.DroneID(),
		Status:     logEntity.Status().String(),
		OccurredAt: cmd.OccurredAt(),
	})

	return nil
}

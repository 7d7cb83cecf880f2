package commands

import (
	"context"
	"errors"
	"log/slog"

	"dronefleet/internal/core/ports"
	"dronefleet/internal/pkg/errs"
)

var ErrNoOpenDeliveryFound = errors.New("no open delivery found for drone")

// MarkArrivedCommandHandler records that a drone reached its destination.
// Stamps the open flight record, then notifies the order coordinator over
// the event bus and pushes the status to live-tracking subscribers.
type MarkArrivedCommandHandler struct {
	uowFactory LogUoWFactory
	publisher  ports.EventPublisher
	tracker    ports.TrackingPublisher
}

// NewMarkArrivedCommandHandler creates a handler for arrival signals.
func NewMarkArrivedCommandHandler(
	uowFactory LogUoWFactory,
	publisher ports.EventPublisher,
	tracker ports.TrackingPublisher,
) MarkArrivedCommandHandler {
	return MarkArrivedCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		tracker:    tracker,
	}
}

// Handle processes the arrival signal.
// The bus publication happens after commit and is best-effort: a broker
// failure is logged, never returned, because the arrival is already
// persisted and the completion flow can proceed without the notification.
func (h *MarkArrivedCommandHandler) Handle(ctx context.Context, cmd MarkArrivedCommand) error {
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

	logRepo := uow.DeliveryLogRepository()

	logEntity, err := logRepo.GetOpenByDrone(ctx, cmd.DroneID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOpenDeliveryFound
	}
	if err != nil {
		return err
	}

	if err = logEntity.MarkArrived(cmd.OccurredAt()); err != nil {
		return err
	}

	if err = logRepo.Update(ctx, logEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	event := ports.DroneArrivedEvent{
		OrderID:   logEntity.OrderID(),
		DroneID:   cmd.DroneID(),
		Timestamp: cmd.OccurredAt(),
	}
	if err = h.publisher.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish drone arrival",
			"orderID", logEntity.OrderID().String(), "error", err)
	}

	h.tracker.PublishOrderStatus(ports.OrderStatusUpdate{
		OrderID:    logEntity.OrderID(),
		DroneID:    cmd.DroneID(),
		Status:     logEntity.Status().String(),
		OccurredAt: cmd.OccurredAt(),
	})

	return nil
}

package commands

import (
	"context"
	"errors"
	"log/slog"

	"dronefleet/internal/core/domain/model/deliverylog"
	"dronefleet/internal/core/ports"
	"dronefleet/internal/pkg/errs"
)

// RecordTelemetryCommandHandler ingests GPS reports from the fleet.
//
// Every report updates the drone's position and battery. When the drone is
// flying an order, the report is also appended to the open flight record.
// Reports for a record that already went terminal are dropped with a
// warning; the launcher keeps sending for a short window after completion
// and those stragglers must not fail the ingest path.
type RecordTelemetryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	tracker    ports.TrackingPublisher
}

// NewRecordTelemetryCommandHandler creates a handler for telemetry ingestion.
// Requires a DeliveryUoWFactory for transactional persistence and a
// TrackingPublisher for the live position feed.
func NewRecordTelemetryCommandHandler(
	uowFactory DeliveryUoWFactory,
	tracker ports.TrackingPublisher,
) RecordTelemetryCommandHandler {
	return RecordTelemetryCommandHandler{
		uowFactory: uowFactory,
		tracker:    tracker,
	}
}

// Handle processes one position report.
// The live-tracking push happens after commit and never blocks: a slow
// subscriber loses messages instead of stalling ingestion.
func (h *RecordTelemetryCommandHandler) Handle(ctx context.Context, cmd RecordTelemetryCommand) error {
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

	droneEntity, err := droneRepo.Get(ctx, cmd.DroneID())
	if err != nil {
		return err
	}

	if err = droneEntity.UpdatePosition(cmd.Position(), cmd.BatteryPercent()); err != nil {
		return err
	}

	if droneEntity.CurrentOrderID() != nil {
		if err = h.appendToOpenLog(ctx, uow, cmd); err != nil {
			return err
		}
	}

	if err = droneRepo.Update(ctx, droneEntity); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.tracker.PublishDronePosition(ports.DronePositionUpdate{
		DroneID:        cmd.DroneID(),
		Latitude:       cmd.Position().Latitude(),
		Longitude:      cmd.Position().Longitude(),
		BatteryPercent: cmd.BatteryPercent(),
		SpeedKmh:       cmd.SpeedKmh(),
		RecordedAt:     cmd.RecordedAt(),
	})

	return nil
}

func (h *RecordTelemetryCommandHandler) appendToOpenLog(
	ctx context.Context,
	uow DeliveryUoW,
	cmd RecordTelemetryCommand,
) error {
	logRepo := uow.DeliveryLogRepository()

	logEntity, err := logRepo.GetOpenByDrone(ctx, cmd.DroneID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		slog.WarnContext(ctx, "telemetry for drone with active order but no open delivery record",
			"droneID", cmd.DroneID().String())
		return nil
	}
	if err != nil {
		return err
	}

	sample, err := deliverylog.NewGpsSample(
		cmd.Position(),
		cmd.RecordedAt(),
		cmd.BatteryPercent(),
		cmd.SpeedKmh(),
		cmd.AltitudeMeters(),
	)
	if err != nil {
		return err
	}

	if err = logEntity.AppendSample(sample); err != nil {
		if errors.Is(err, errs.ErrStateConflict) {
			slog.WarnContext(ctx, "dropping late telemetry for closed delivery record",
				"droneID", cmd.DroneID().String(), "deliveryLogID", logEntity.ID().String())
			return nil
		}
		return err
	}

	return logRepo.Update(ctx, logEntity)
}

package queries

import (
	"context"
	"time"

	"dronefleet/internal/core/domain/model/deliverylog"
	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryLogQueryHandler reads delivery records and their GPS trails
// straight from the database, skipping aggregate reconstruction.
type GetDeliveryLogQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryLogQueryHandler creates a handler for delivery record queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryLogQueryHandler(db *gorm.DB) GetDeliveryLogQueryHandler {
	return GetDeliveryLogQueryHandler{db: db}
}

// Handle executes the query. Returns the order's most recent delivery record
// with its trail in append order, or an ObjectNotFoundError when the order
// never had a delivery.
func (h GetDeliveryLogQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryLogQuery,
) (GetDeliveryLogQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryLogQueryResponse{}, err
	}

	record, recordID, err := h.readRecord(ctx, query.OrderID())
	if err != nil {
		return GetDeliveryLogQueryResponse{}, err
	}

	samples, err := h.readTrail(ctx, recordID)
	if err != nil {
		return GetDeliveryLogQueryResponse{}, err
	}
	record.Samples = samples

	return record, nil
}

func (h GetDeliveryLogQueryHandler) readRecord(
	ctx context.Context,
	orderID kernel.UUID,
) (GetDeliveryLogQueryResponse, uuid.UUID, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			order_id,
			drone_id,
			status,
			destination_latitude,
			destination_longitude,
			destination_address,
			estimated_distance_km,
			estimated_eta_minutes,
			actual_distance_km,
			battery_consumed_percent,
			started_at,
			arrived_at,
			ended_at
		FROM delivery_logs
		WHERE order_id = ?
		ORDER BY started_at DESC NULLS FIRST
		LIMIT 1
	`, orderID.Bytes()).Rows()
	if err != nil {
		return GetDeliveryLogQueryResponse{}, uuid.UUID{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetDeliveryLogQueryResponse{}, uuid.UUID{}, err
		}
		return GetDeliveryLogQueryResponse{}, uuid.UUID{},
			errs.NewObjectNotFoundError("delivery log", orderID.String())
	}

	var record GetDeliveryLogQueryResponse
	var id, rawOrderID, rawDroneID uuid.UUID
	var status int
	var latitude, longitude float64

	err = rows.Scan(
		&id,
		&rawOrderID,
		&rawDroneID,
		&status,
		&latitude,
		&longitude,
		&record.DestinationAddress,
		&record.EstimatedDistanceKm,
		&record.EstimatedEtaMinutes,
		&record.ActualDistanceKm,
		&record.BatteryConsumedPercent,
		&record.StartedAt,
		&record.ArrivedAt,
		&record.EndedAt,
	)
	if err != nil {
		return GetDeliveryLogQueryResponse{}, uuid.UUID{}, err
	}

	recordID, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetDeliveryLogQueryResponse{}, uuid.UUID{}, err
	}
	record.ID = recordID

	record.OrderID, err = kernel.UUIDFromBytes(rawOrderID[:])
	if err != nil {
		return GetDeliveryLogQueryResponse{}, uuid.UUID{}, err
	}

	record.DroneID, err = kernel.UUIDFromBytes(rawDroneID[:])
	if err != nil {
		return GetDeliveryLogQueryResponse{}, uuid.UUID{}, err
	}

	record.Destination, err = kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return GetDeliveryLogQueryResponse{}, uuid.UUID{}, err
	}

	record.Status = deliverylog.Status(status).String()

	return record, id, nil
}

func (h GetDeliveryLogQueryHandler) readTrail(
	ctx context.Context,
	recordID uuid.UUID,
) ([]GetDeliveryLogQuerySample, error) {
	samples := make([]GetDeliveryLogQuerySample, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			latitude,
			longitude,
			recorded_at,
			battery_percent,
			speed_kmh,
			altitude_meters
		FROM gps_samples
		WHERE delivery_log_id = ?
		ORDER BY seq ASC
	`, recordID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sample GetDeliveryLogQuerySample
		var latitude, longitude float64
		var recordedAt time.Time

		err = rows.Scan(
			&latitude,
			&longitude,
			&recordedAt,
			&sample.BatteryPercent,
			&sample.SpeedKmh,
			&sample.AltitudeMeters,
		)
		if err != nil {
			return nil, err
		}

		sample.Position, err = kernel.NewGeoPoint(latitude, longitude)
		if err != nil {
			return nil, err
		}
		sample.RecordedAt = recordedAt

		samples = append(samples, sample)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return samples, nil
}

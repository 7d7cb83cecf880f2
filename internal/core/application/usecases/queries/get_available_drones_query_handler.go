package queries

import (
	"context"

	"dronefleet/internal/core/domain/model/drone"
	"dronefleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAvailableDronesQueryHandler reads reservable drones straight from the
// drones table, skipping aggregate reconstruction.
type GetAvailableDronesQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableDronesQueryHandler creates a handler for available-drone queries.
// Requires a GORM database connection for query execution.
func NewGetAvailableDronesQueryHandler(db *gorm.DB) GetAvailableDronesQueryHandler {
	return GetAvailableDronesQueryHandler{db: db}
}

// Handle executes the query. Results are ordered battery-descending with
// name as a stable tie-break.
func (h GetAvailableDronesQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDronesQuery,
) ([]GetAvailableDronesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drones := make([]GetAvailableDronesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			battery_percent,
			current_latitude,
			current_longitude,
			max_payload_kg,
			max_speed_kmh,
			total_deliveries
		FROM drones
		WHERE restaurant_id = ?
		  AND status = ?
		  AND is_active
		  AND battery_percent >= ?
		ORDER BY battery_percent DESC, name ASC
	`, query.RestaurantID().Bytes(), int(drone.Idle), query.MinBatteryPercent()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var droneResp GetAvailableDronesQueryResponse
		var id uuid.UUID
		var latitude, longitude float64

		err = rows.Scan(
			&id,
			&droneResp.Name,
			&droneResp.BatteryPercent,
			&latitude,
			&longitude,
			&droneResp.MaxPayloadKg,
			&droneResp.MaxSpeedKmh,
			&droneResp.TotalDeliveries,
		)
		if err != nil {
			return nil, err
		}

		droneID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		droneResp.ID = droneID

		position, posErr := kernel.NewGeoPoint(latitude, longitude)
		if posErr != nil {
			return nil, posErr
		}
		droneResp.CurrentPosition = position

		drones = append(drones, droneResp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return drones, nil
}

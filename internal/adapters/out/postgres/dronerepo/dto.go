// Package dronerepo provides data transfer objects and mapping functions for drone persistence.
// This package implements the repository pattern for the drone domain aggregate, handling
// the conversion between domain entities and database representations.
package dronerepo

import (
	"dronefleet/internal/core/domain/model/drone"
	"dronefleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DroneDTO represents the database structure for persisting drone aggregates.
// Maps drone domain entities to a relational table indexed for the
// availability query (restaurant + status + battery).
type DroneDTO struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	RestaurantID    uuid.UUID   `gorm:"type:uuid;not null;index"`
	OwnerID         uuid.UUID   `gorm:"type:uuid;not null;index"`
	Name            string      `gorm:"type:varchar(255);not null"`
	Status          int         `gorm:"type:int;not null;index"`
	CurrentPosition GeoPointDTO `gorm:"embedded;embeddedPrefix:current_"`
	HomePosition    GeoPointDTO `gorm:"embedded;embeddedPrefix:home_"`
	BatteryPercent  float64     `gorm:"type:numeric;not null"`
	MaxPayloadKg    float64     `gorm:"type:numeric;not null"`
	MaxSpeedKmh     float64     `gorm:"type:numeric;not null"`
	CurrentOrderID  *uuid.UUID  `gorm:"type:uuid;index"`
	IsActive        bool        `gorm:"not null"`
	TotalDeliveries int         `gorm:"type:int;not null"`
}

// TableName specifies the database table name for drone entities.
// Overrides GORM's default naming convention to use "drones" instead of "drone_dtos".
func (DroneDTO) TableName() string {
	return "drones"
}

// GeoPointDTO represents embedded geographic coordinates within the drone table.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:numeric"`
	Longitude float64 `gorm:"type:numeric"`
}

// fromDomain converts a drone domain aggregate to its database representation.
func fromDomain(drone *drone.Drone) DroneDTO {
	var currentOrderID *uuid.UUID
	if id := drone.CurrentOrderID(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	return DroneDTO{
		ID:           drone.ID().Bytes(),
		RestaurantID: drone.RestaurantID().Bytes(),
		OwnerID:      drone.OwnerID().Bytes(),
		Name:         drone.Name(),
		Status:       int(drone.Status()),
		CurrentPosition: GeoPointDTO{
			Latitude:  drone.CurrentPosition().Latitude(),
			Longitude: drone.CurrentPosition().Longitude(),
		},
		HomePosition: GeoPointDTO{
			Latitude:  drone.HomePosition().Latitude(),
			Longitude: drone.HomePosition().Longitude(),
		},
		BatteryPercent:  drone.BatteryPercent(),
		MaxPayloadKg:    drone.MaxPayloadKg(),
		MaxSpeedKmh:     drone.MaxSpeedKmh(),
		CurrentOrderID:  currentOrderID,
		IsActive:        drone.IsActive(),
		TotalDeliveries: drone.TotalDeliveries(),
	}
}

// toDomain converts a database DTO to a drone domain aggregate.
// Reconstructs the complete aggregate including the active order reference
// and delivery counter using RestoreDrone.
func toDomain(dto DroneDTO) (*drone.Drone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	currentPosition, err := kernel.NewGeoPoint(dto.CurrentPosition.Latitude, dto.CurrentPosition.Longitude)
	if err != nil {
		return nil, err
	}

	homePosition, err := kernel.NewGeoPoint(dto.HomePosition.Latitude, dto.HomePosition.Longitude)
	if err != nil {
		return nil, err
	}

	var currentOrderID *kernel.UUID
	if dto.CurrentOrderID != nil {
		oID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrderID = &oID
	}

	return drone.RestoreDrone(
		id,
		restaurantID,
		ownerID,
		dto.Name,
		drone.Status(dto.Status),
		currentPosition,
		homePosition,
		dto.BatteryPercent,
		dto.MaxPayloadKg,
		dto.MaxSpeedKmh,
		currentOrderID,
		dto.IsActive,
		dto.TotalDeliveries,
	)
}

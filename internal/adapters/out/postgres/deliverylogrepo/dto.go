// Package deliverylogrepo provides data transfer objects and mapping functions
// for delivery log persistence. This package implements the repository pattern
// for the delivery log aggregate, handling the conversion between domain
// entities and database representations.
package deliverylogrepo

import (
	"time"

	"dronefleet/internal/core/domain/model/deliverylog"
	"dronefleet/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryLogDTO represents the database structure for persisting delivery
// log aggregates. The order and drone indexes back the open-record lookups
// that guard the one-open-record-per-drone invariant.
type DeliveryLogDTO struct {
	ID                     uuid.UUID      `gorm:"type:uuid;primaryKey"`
	OrderID                uuid.UUID      `gorm:"type:uuid;not null;index"`
	DroneID                uuid.UUID      `gorm:"type:uuid;not null;index"`
	Destination            GeoPointDTO    `gorm:"embedded;embeddedPrefix:destination_"`
	DestinationAddress     string         `gorm:"type:varchar(500);not null"`
	EstimatedDistanceKm    float64        `gorm:"type:numeric;not null"`
	EstimatedEtaMinutes    int            `gorm:"type:int;not null"`
	ActualDistanceKm       *float64       `gorm:"type:numeric"`
	BatteryConsumedPercent *float64       `gorm:"type:numeric"`
	Status                 int            `gorm:"type:int;not null;index"`
	StartedAt              *time.Time     `gorm:"type:timestamptz"`
	ArrivedAt              *time.Time     `gorm:"type:timestamptz"`
	EndedAt                *time.Time     `gorm:"type:timestamptz"`
	Samples                []GpsSampleDTO `gorm:"foreignKey:DeliveryLogID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery log entities.
// Overrides GORM's default naming convention to use "delivery_logs".
func (DeliveryLogDTO) TableName() string {
	return "delivery_logs"
}

// GeoPointDTO represents the embedded destination coordinates within the
// delivery log table.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:numeric"`
	Longitude float64 `gorm:"type:numeric"`
}

// GpsSampleDTO represents one accumulated GPS trail point. Seq preserves
// the append order of the trail within its record.
type GpsSampleDTO struct {
	DeliveryLogID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq            int       `gorm:"type:int;primaryKey"`
	Latitude       float64   `gorm:"type:numeric;not null"`
	Longitude      float64   `gorm:"type:numeric;not null"`
	RecordedAt     time.Time `gorm:"type:timestamptz;not null"`
	BatteryPercent *float64  `gorm:"type:numeric"`
	SpeedKmh       *float64  `gorm:"type:numeric"`
	AltitudeMeters *float64  `gorm:"type:numeric"`
}

// TableName specifies the database table name for GPS trail points.
// Overrides GORM's default naming convention to use "gps_samples".
func (GpsSampleDTO) TableName() string {
	return "gps_samples"
}

// fromDomain converts a delivery log aggregate to its database representation.
// Maps the full GPS trail with sequence numbers preserving append order.
func fromDomain(log *deliverylog.DeliveryLog) DeliveryLogDTO {
	logID := log.ID().Bytes()

	samples := make([]GpsSampleDTO, 0, len(log.Samples()))
	for i, sample := range log.Samples() {
		samples = append(samples, GpsSampleDTO{
			DeliveryLogID:  logID,
			Seq:            i,
			Latitude:       sample.Position().Latitude(),
			Longitude:      sample.Position().Longitude(),
			RecordedAt:     sample.RecordedAt(),
			BatteryPercent: sample.BatteryPercent(),
			SpeedKmh:       sample.SpeedKmh(),
			AltitudeMeters: sample.AltitudeMeters(),
		})
	}

	return DeliveryLogDTO{
		ID:      logID,
		OrderID: log.OrderID().Bytes(),
		DroneID: log.DroneID().Bytes(),
		Destination: GeoPointDTO{
			Latitude:  log.Destination().Latitude(),
			Longitude: log.Destination().Longitude(),
		},
		DestinationAddress:     log.DestinationAddress(),
		EstimatedDistanceKm:    log.EstimatedDistanceKm(),
		EstimatedEtaMinutes:    log.EstimatedEtaMinutes(),
		ActualDistanceKm:       log.ActualDistanceKm(),
		BatteryConsumedPercent: log.BatteryConsumedPercent(),
		Status:                 int(log.Status()),
		StartedAt:              log.StartedAt(),
		ArrivedAt:              log.ArrivedAt(),
		EndedAt:                log.EndedAt(),
		Samples:                samples,
	}
}

// toDomain converts a database DTO to a delivery log aggregate.
// Reconstructs the complete aggregate including the GPS trail using
// RestoreDeliveryLog. Samples must already be ordered by sequence.
func toDomain(dto DeliveryLogDTO) (*deliverylog.DeliveryLog, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	droneID, err := kernel.UUIDFromBytes(dto.DroneID[:])
	if err != nil {
		return nil, err
	}

	destination, err := kernel.NewGeoPoint(dto.Destination.Latitude, dto.Destination.Longitude)
	if err != nil {
		return nil, err
	}

	samples := make([]deliverylog.GpsSample, 0, len(dto.Samples))
	for _, sampleDto := range dto.Samples {
		sample, sampleErr := sampleToDomain(sampleDto)
		if sampleErr != nil {
			return nil, sampleErr
		}
		samples = append(samples, sample)
	}

	return deliverylog.RestoreDeliveryLog(
		id,
		orderID,
		droneID,
		samples,
		destination,
		dto.DestinationAddress,
		dto.EstimatedDistanceKm,
		dto.EstimatedEtaMinutes,
		dto.ActualDistanceKm,
		dto.BatteryConsumedPercent,
		deliverylog.Status(dto.Status),
		dto.StartedAt,
		dto.ArrivedAt,
		dto.EndedAt,
	)
}

// sampleToDomain converts a GPS trail point DTO to the domain value object.
func sampleToDomain(dto GpsSampleDTO) (deliverylog.GpsSample, error) {
	position, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return deliverylog.GpsSample{}, err
	}

	return deliverylog.NewGpsSample(
		position,
		dto.RecordedAt,
		dto.BatteryPercent,
		dto.SpeedKmh,
		dto.AltitudeMeters,
	)
}

package commands

import (
	"errors"
	"time"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/guard"
)

var (
	ErrRecordTelemetryCommandIsNotConstructed = errors.New(
		"RecordTelemetryCommand must be created via NewRecordTelemetryCommand constructor",
	)
	ErrRecordedAtIsRequired = errors.New("recordedAt is required")
)

// RecordTelemetryCommand carries one GPS position report from a drone.
// Battery, speed, and altitude are optional; a nil pointer means the report
// omitted the reading.
type RecordTelemetryCommand struct { //nolint:recvcheck //using for validation
	droneID        kernel.UUID
	position       kernel.GeoPoint
	recordedAt     time.Time
	batteryPercent *float64
	speedKmh       *float64
	altitudeMeters *float64

	guard guard.ConstructorGuard
}

// NewRecordTelemetryCommand creates a command from a raw position report.
// Validates the drone ID and position and requires a non-zero timestamp;
// optional readings pass through unchanged.
func NewRecordTelemetryCommand(
	droneID kernel.UUID,
	position kernel.GeoPoint,
	recordedAt time.Time,
	batteryPercent *float64,
	speedKmh *float64,
	altitudeMeters *float64,
) (RecordTelemetryCommand, error) {
	command := RecordTelemetryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDroneID(droneID),
		command.setPosition(position),
		command.setRecordedAt(recordedAt),
	); err != nil {
		return RecordTelemetryCommand{}, err
	}

	command.batteryPercent = copyFloat(batteryPercent)
	command.speedKmh = copyFloat(speedKmh)
	command.altitudeMeters = copyFloat(altitudeMeters)

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRecordTelemetryCommandIsNotConstructed if validation fails.
func (c RecordTelemetryCommand) Validate() error {
	return c.guard.Validate(ErrRecordTelemetryCommandIsNotConstructed)
}

// DroneID returns the reporting drone ID from the command.
func (c RecordTelemetryCommand) DroneID() kernel.UUID {
	return c.droneID
}

// Position returns the reported position from the command.
func (c RecordTelemetryCommand) Position() kernel.GeoPoint {
	return c.position
}

// RecordedAt returns the report timestamp from the command.
func (c RecordTelemetryCommand) RecordedAt() time.Time {
	return c.recordedAt
}

// BatteryPercent returns the reported battery level, or nil when omitted.
func (c RecordTelemetryCommand) BatteryPercent() *float64 {
	return copyFloat(c.batteryPercent)
}

// SpeedKmh returns the reported ground speed, or nil when omitted.
func (c RecordTelemetryCommand) SpeedKmh() *float64 {
	return copyFloat(c.speedKmh)
}

// AltitudeMeters returns the reported altitude, or nil when omitted.
func (c RecordTelemetryCommand) AltitudeMeters() *float64 {
	return copyFloat(c.altitudeMeters)
}

func (c *RecordTelemetryCommand) setDroneID(droneID kernel.UUID) error {
	if err := droneID.Validate(); err != nil {
		return err
	}

	c.droneID = droneID
	return nil
}

func (c *RecordTelemetryCommand) setPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	c.position = position
	return nil
}

func (c *RecordTelemetryCommand) setRecordedAt(recordedAt time.Time) error {
	if recordedAt.IsZero() {
		return ErrRecordedAtIsRequired
	}

	c.recordedAt = recordedAt
	return nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}

	value := *v
	return &value
}

package deliverylog

import (
	"errors"
	"fmt"
	"time"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"
	"dronefleet/internal/pkg/guard"
)

// ErrGpsSampleIsNotConstructed is returned when attempting to use an
// improperly initialized GpsSample.
var ErrGpsSampleIsNotConstructed = errs.NewValueIsRequiredError(
	"gps sample must be created via NewGpsSample constructor")

// GpsSample is one point of the recorded flight path: a validated position,
// the report timestamp, and the optional battery/speed/altitude readings the
// drone attached to the report. Samples are immutable and append-only inside
// a delivery log; insertion order is meaningful.
type GpsSample struct { //nolint:recvcheck //using for validation
	position       kernel.GeoPoint
	recordedAt     time.Time
	batteryPercent *float64
	speedKmh       *float64
	altitudeMeters *float64
	guard          guard.ConstructorGuard
}

// NewGpsSample creates a GpsSample from a position report.
// The position must be valid and the timestamp non-zero; battery, speed, and
// altitude are optional and pass through unchanged when the report omits
// them.
func NewGpsSample(
	position kernel.GeoPoint,
	recordedAt time.Time,
	batteryPercent *float64,
	speedKmh *float64,
	altitudeMeters *float64,
) (GpsSample, error) {
	sample := GpsSample{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		position.Validate(),
		sample.setRecordedAt(recordedAt),
		sample.setBatteryPercent(batteryPercent),
		sample.setSpeedKmh(speedKmh),
	); err != nil {
		return GpsSample{}, err
	}

	sample.position = position
	if altitudeMeters != nil {
		altitude := *altitudeMeters
		sample.altitudeMeters = &altitude
	}

	return sample, nil
}

// Validate checks if the GpsSample was properly constructed.
func (s GpsSample) Validate() error {
	return s.guard.Validate(ErrGpsSampleIsNotConstructed)
}

// Position returns the reported position.
func (s GpsSample) Position() kernel.GeoPoint {
	return s.position
}

// RecordedAt returns the report timestamp.
func (s GpsSample) RecordedAt() time.Time {
	return s.recordedAt
}

// BatteryPercent returns the reported battery level, or nil when the report
// omitted it. The returned pointer is a copy.
func (s GpsSample) BatteryPercent() *float64 {
	return copyFloat(s.batteryPercent)
}

// SpeedKmh returns the reported speed, or nil when the report omitted it.
func (s GpsSample) SpeedKmh() *float64 {
	return copyFloat(s.speedKmh)
}

// AltitudeMeters returns the reported altitude, or nil when the report
// omitted it.
func (s GpsSample) AltitudeMeters() *float64 {
	return copyFloat(s.altitudeMeters)
}

// String returns a compact representation for logging.
func (s GpsSample) String() string {
	return fmt.Sprintf("GpsSample(%s at %s)", s.position, s.recordedAt.Format(time.RFC3339))
}

func (s *GpsSample) setRecordedAt(recordedAt time.Time) error {
	if recordedAt.IsZero() {
		return errs.NewValueIsRequiredError("recordedAt")
	}

	s.recordedAt = recordedAt
	return nil
}

func (s *GpsSample) setBatteryPercent(batteryPercent *float64) error {
	if batteryPercent == nil {
		return nil
	}
	if *batteryPercent < 0 || *batteryPercent > 100 {
		return errs.NewValueIsOutOfRangeError("batteryPercent", *batteryPercent, 0, 100)
	}

	battery := *batteryPercent
	s.batteryPercent = &battery
	return nil
}

func (s *GpsSample) setSpeedKmh(speedKmh *float64) error {
	if speedKmh == nil {
		return nil
	}
	if *speedKmh < 0 {
		return errs.NewValueIsInvalidError("speedKmh")
	}

	speed := *speedKmh
	s.speedKmh = &speed
	return nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

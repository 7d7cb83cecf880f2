package deliverylog

import (
	"errors"
	"time"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"
	"dronefleet/internal/pkg/guard"
)

// Domain errors for delivery log operations.
var (
	// ErrDeliveryLogIsNotConstructed is returned when using an improperly
	// initialized DeliveryLog.
	ErrDeliveryLogIsNotConstructed = errors.New(
		"DeliveryLog must be created via NewDeliveryLog constructor")
	// ErrDestinationAddressIsRequired is returned when opening a log without
	// a destination address.
	ErrDestinationAddressIsRequired = errs.NewValueIsRequiredError("destinationAddress")
)

// DeliveryLog is the aggregate root of the delivery ledger: the flight record
// of a single assignment. It is created exactly once per assignment and owns
// the append-only GPS trail, the lifecycle state machine, and the
// reconciliation of estimated against actual distance at completion.
//
// The order and drone references are immutable once the record is created.
// One order maps to at most one open record at a time, as does one drone;
// the repository enforces that pairing when the record is opened.
type DeliveryLog struct {
	// id uniquely identifies the record
	id kernel.UUID
	// orderID references the delivered order, immutable
	orderID kernel.UUID
	// droneID references the flying drone, immutable
	droneID kernel.UUID
	// samples is the append-only flight trail in insertion order
	samples []GpsSample
	// destination is the delivery target position
	destination kernel.GeoPoint
	// destinationAddress is the human-readable delivery address
	destinationAddress string
	// estimatedDistanceKm is the planned flight distance
	estimatedDistanceKm float64
	// estimatedEtaMinutes is the planned flight duration
	estimatedEtaMinutes int
	// actualDistanceKm is the flown distance, set at completion
	actualDistanceKm *float64
	// batteryConsumedPercent is derived from the actual distance at completion
	batteryConsumedPercent *float64
	// status is the lifecycle state
	status Status
	// startedAt is stamped by the first telemetry sample
	startedAt *time.Time
	// arrivedAt is stamped by the arrival signal
	arrivedAt *time.Time
	// endedAt is stamped when the record reaches a terminal state
	endedAt *time.Time
	// guard ensures the record was properly constructed
	guard guard.ConstructorGuard
}

// NewDeliveryLog opens a flight record for an assignment in the Preparing
// state. The estimated distance and ETA come from the reservation that
// triggered the assignment.
func NewDeliveryLog(
	id kernel.UUID,
	orderID kernel.UUID,
	droneID kernel.UUID,
	destination kernel.GeoPoint,
	destinationAddress string,
	estimatedDistanceKm float64,
	estimatedEtaMinutes int,
) (*DeliveryLog, error) {
	log := &DeliveryLog{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		log.setID(id),
		log.setOrderID(orderID),
		log.setDroneID(droneID),
		log.setDestination(destination),
		log.setDestinationAddress(destinationAddress),
		log.setEstimates(estimatedDistanceKm, estimatedEtaMinutes),
	); err != nil {
		return nil, err
	}

	log.status = Preparing

	return log, nil
}

// RestoreDeliveryLog reconstructs a DeliveryLog aggregate from persistent
// storage, including its flight trail and timestamps.
func RestoreDeliveryLog(
	id kernel.UUID,
	orderID kernel.UUID,
	droneID kernel.UUID,
	samples []GpsSample,
	destination kernel.GeoPoint,
	destinationAddress string,
	estimatedDistanceKm float64,
	estimatedEtaMinutes int,
	actualDistanceKm *float64,
	batteryConsumedPercent *float64,
	status Status,
	startedAt *time.Time,
	arrivedAt *time.Time,
	endedAt *time.Time,
) (*DeliveryLog, error) {
	log := &DeliveryLog{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		log.setID(id),
		log.setOrderID(orderID),
		log.setDroneID(droneID),
		log.setDestination(destination),
		log.setDestinationAddress(destinationAddress),
		log.setEstimates(estimatedDistanceKm, estimatedEtaMinutes),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	for _, sample := range samples {
		if err := sample.Validate(); err != nil {
			return nil, err
		}
	}

	log.samples = make([]GpsSample, len(samples))
	copy(log.samples, samples)

	log.status = status
	log.actualDistanceKm = copyFloat(actualDistanceKm)
	log.batteryConsumedPercent = copyFloat(batteryConsumedPercent)
	log.startedAt = copyTime(startedAt)
	log.arrivedAt = copyTime(arrivedAt)
	log.endedAt = copyTime(endedAt)

	return log, nil
}

// IsEqual compares two delivery logs by identity.
func (l *DeliveryLog) IsEqual(other *DeliveryLog) bool {
	if other == nil {
		return false
	}
	return l.id.IsEqual(other.id)
}

// Validate checks if the DeliveryLog was properly constructed.
func (l *DeliveryLog) Validate() error {
	if l == nil {
		return ErrDeliveryLogIsNotConstructed
	}
	return l.guard.Validate(ErrDeliveryLogIsNotConstructed)
}

// ID returns the unique identifier of the record.
func (l *DeliveryLog) ID() kernel.UUID {
	return l.id
}

// OrderID returns the delivered order reference.
func (l *DeliveryLog) OrderID() kernel.UUID {
	return l.orderID
}

// DroneID returns the flying drone reference.
func (l *DeliveryLog) DroneID() kernel.UUID {
	return l.droneID
}

// Samples returns the flight trail in insertion order.
// The returned slice is a copy to prevent external modification.
func (l *DeliveryLog) Samples() []GpsSample {
	out := make([]GpsSample, len(l.samples))
	copy(out, l.samples)
	return out
}

// Destination returns the delivery target position.
func (l *DeliveryLog) Destination() kernel.GeoPoint {
	return l.destination
}

// DestinationAddress returns the human-readable delivery address.
func (l *DeliveryLog) DestinationAddress() string {
	return l.destinationAddress
}

// EstimatedDistanceKm returns the planned flight distance.
func (l *DeliveryLog) EstimatedDistanceKm() float64 {
	return l.estimatedDistanceKm
}

// EstimatedEtaMinutes returns the planned flight duration.
func (l *DeliveryLog) EstimatedEtaMinutes() int {
	return l.estimatedEtaMinutes
}

// ActualDistanceKm returns the flown distance, set at completion.
func (l *DeliveryLog) ActualDistanceKm() *float64 {
	return copyFloat(l.actualDistanceKm)
}

// BatteryConsumedPercent returns the battery consumed by the actual flight,
// set at completion.
func (l *DeliveryLog) BatteryConsumedPercent() *float64 {
	return copyFloat(l.batteryConsumedPercent)
}

// Status returns the lifecycle state.
func (l *DeliveryLog) Status() Status {
	return l.status
}

// StartedAt returns the first-sample timestamp, or nil before the flight
// started.
func (l *DeliveryLog) StartedAt() *time.Time {
	return copyTime(l.startedAt)
}

// ArrivedAt returns the arrival timestamp, or nil before arrival.
func (l *DeliveryLog) ArrivedAt() *time.Time {
	return copyTime(l.arrivedAt)
}

// EndedAt returns the terminal timestamp, or nil while the record is open.
func (l *DeliveryLog) EndedAt() *time.Time {
	return copyTime(l.endedAt)
}

// IsOpen reports whether the record still accepts telemetry and transitions.
func (l *DeliveryLog) IsOpen() bool {
	return !l.status.IsTerminal()
}

// AppendSample appends a GPS sample to the flight trail.
// The first sample transitions the record from Preparing to InFlight and
// stamps the flight start time. Samples referencing a terminal record fail
// with a StateConflictError; the caller drops them with a warning since
// telemetry may arrive after cancellation.
func (l *DeliveryLog) AppendSample(sample GpsSample) error {
	if err := sample.Validate(); err != nil {
		return err
	}

	if l.status.IsTerminal() {
		return errs.NewStateConflictError("delivery log", l.status.String(), "accept telemetry")
	}

	if l.status == Preparing {
		next, err := l.status.StartFlight()
		if err != nil {
			return err
		}
		startedAt := sample.RecordedAt()
		l.status = next
		l.startedAt = &startedAt
	}

	l.samples = append(l.samples, sample)
	return nil
}

// MarkArrived records arrival at the destination.
// Fails with a StateConflictError unless the record is InFlight.
func (l *DeliveryLog) MarkArrived(at time.Time) error {
	next, err := l.status.Arrive()
	if err != nil {
		return err
	}

	l.status = next
	arrivedAt := at
	l.arrivedAt = &arrivedAt
	return nil
}

/// Complete finalizes the record: the actual distance is recomputed by
// summing the haversine distance between consecutive samples, the battery
// consumed is derived from that distance, and the end time is stamped.
// Records with fewer than two samples complete with zero actual distance.
//
// InFlight is accepted alongside Arrived to tolerate a skipped arrival
// event.
func (l *DeliveryLog) Complete(consumptionPerKm float64, at time.Time) error {
	next, err := l.status.Complete()
	if err != nil {
		return err
	}

	actualDistance, err := l.flownDistanceKm()
	if err != nil {
		return err
	}
	batteryConsumed := kernel.BatteryConsumed(actualDistance, consumptionPerKm)

	l.status = next
	l.actualDistanceKm = &actualDistance
	l.batteryConsumedPercent = &batteryConsumed
	endedAt := at
	l.endedAt = &endedAt
	return nil
}

// Cancel moves the record to the Cancelled terminal state.
func (l *DeliveryLog) Cancel(at time.Time) error {
	next, err := l.status.Cancel()
	if err != nil {
		return err
	}

	l.status = next
	endedAt := at
	l.endedAt = &endedAt
	return nil
}

// Fail moves the record to the Failed terminal state.
func (l *DeliveryLog) Fail(at time.Time) error {
	next, err := l.status.Fail()
	if err != nil {
		return err
	}

	l.status = next
	endedAt := at
	l.endedAt = &endedAt
	return nil
}

// flownDistanceKm sums the haversine distance between consecutive samples.
func (l *DeliveryLog) flownDistanceKm() (float64, error) {
	var total float64
	for i := 1; i < len(l.samples); i++ {
		leg, err := l.samples[i-1].Position().DistanceKm(l.samples[i].Position())
		if err != nil {
			return 0, err
		}
		total += leg
	}
	return total, nil
}

// setID sets the record identifier with validation.
func (l *DeliveryLog) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	l.id = id
	return nil
}

// setOrderID sets the order reference with validation.
func (l *DeliveryLog) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	l.orderID = orderID
	return nil
}

// setDroneID sets the drone reference with validation.
func (l *DeliveryLog) setDroneID(droneID kernel.UUID) error {
	if err := droneID.Validate(); err != nil {
		return err
	}

	l.droneID = droneID
	return nil
}

// setDestination sets the delivery target with validation.
func (l *DeliveryLog) setDestination(destination kernel.GeoPoint) error {
	if err := destination.Validate(); err != nil {
		return err
	}

	l.destination = destination
	return nil
}

// setDestinationAddress sets the delivery address with validation.
func (l *DeliveryLog) setDestinationAddress(address string) error {
	if address == "" {
		return ErrDestinationAddressIsRequired
	}

	l.destinationAddress = address
	return nil
}

// setEstimates sets the planned distance and duration with validation.
func (l *DeliveryLog) setEstimates(estimatedDistanceKm float64, estimatedEtaMinutes int) error {
	if estimatedDistanceKm < 0 {
		return errs.NewValueIsInvalidError("estimatedDistanceKm")
	}
	if estimatedEtaMinutes < 0 {
		return errs.NewValueIsInvalidError("estimatedEtaMinutes")
	}

	l.estimatedDistanceKm = estimatedDistanceKm
	l.estimatedEtaMinutes = estimatedEtaMinutes
	return nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	out := *t
	return &out
}

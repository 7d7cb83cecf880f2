package drone

import (
	"errors"

	"dronefleet/internal/core/domain/model/kernel"
	"dronefleet/internal/pkg/errs"
	"dronefleet/internal/pkg/guard"
)

const (
	// batteryMin is the lower bound of the battery percentage range.
	batteryMin float64 = 0
	// batteryMax is the upper bound of the battery percentage range.
	batteryMax float64 = 100
	// initialBatteryPercent is the battery level a freshly registered drone
	// starts with.
	initialBatteryPercent float64 = 100
)

// Domain errors for drone operations.
var (
	// ErrNameIsRequired is returned when attempting to register a drone without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrMaxPayloadIsRequired is returned when the payload capacity is not positive.
	ErrMaxPayloadIsRequired = errs.NewValueIsRequiredError("maxPayloadKg")
	// ErrMaxSpeedIsRequired is returned when the cruise speed is not positive.
	ErrMaxSpeedIsRequired = errs.NewValueIsRequiredError("maxSpeedKmh")
	// ErrDroneIsNotConstructed is returned when using an improperly initialized Drone.
	ErrDroneIsNotConstructed = errors.New("Drone must be created via NewDrone constructor")
	// ErrActiveOrderMismatch is returned when restoring a drone whose
	// active-order reference disagrees with its status.
	ErrActiveOrderMismatch = errs.NewValueIsInvalidError(
		"active order reference must be set exactly while delivering")
)

// Drone is the aggregate root of the fleet registry.
// It owns the drone lifecycle state machine, the active-order reference, and
// the battery/position telemetry mirror.
//
// Invariants:
//   - CurrentOrderID() != nil exactly while Status() == Delivering
//   - battery percentage stays within [0,100]
//   - only the owning operator may move the drone in and out of maintenance;
//     only an admin may force-disable it
//
// A drone is registered Idle at its home position with a full battery:
//
//	home, _ := kernel.NewGeoPoint(10.7769, 106.7009)
//	d, err := NewDrone(kernel.NewUUID(), restaurantID, ownerID, "DJI-054", home, 2.5, 60)
type Drone struct {
	// id uniquely identifies the drone
	id kernel.UUID
	// restaurantID references the restaurant the drone delivers for
	restaurantID kernel.UUID
	// ownerID references the fleet operator that owns the drone
	ownerID kernel.UUID
	// name is the human-readable callsign of the drone
	name string
	// status is the lifecycle state
	status Status
	// currentPosition is the last reported position
	currentPosition kernel.GeoPoint
	// homePosition is the base the drone returns to
	homePosition kernel.GeoPoint
	// batteryPercent is the last reported battery level in [0,100]
	batteryPercent float64
	// maxPayloadKg is the payload capacity
	maxPayloadKg float64
	// maxSpeedKmh is the cruise speed used for ETA estimates
	maxSpeedKmh float64
	// currentOrderID is the active order, set exactly while delivering
	currentOrderID *kernel.UUID
	// isActive is false when an admin has force-disabled the drone
	isActive bool
	// totalDeliveries counts completed deliveries
	totalDeliveries int
	// guard ensures the drone was properly constructed
	guard guard.ConstructorGuard
}

// NewDrone registers a new drone for a restaurant.
// The drone starts Idle and active at its home position with a full battery
// and an empty delivery counter.
//
// All parameters are validated; errors are aggregated when several are
// invalid at once.
func NewDrone(
	id kernel.UUID,
	restaurantID kernel.UUID,
	ownerID kernel.UUID,
	name string,
	homePosition kernel.GeoPoint,
	maxPayloadKg float64,
	maxSpeedKmh float64,
) (*Drone, error) {
	drone := &Drone{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		drone.setID(id),
		drone.setRestaurantID(restaurantID),
		drone.setOwnerID(ownerID),
		drone.setName(name),
		drone.setHomePosition(homePosition),
		drone.setCurrentPosition(homePosition),
		drone.setMaxPayload(maxPayloadKg),
		drone.setMaxSpeed(maxSpeedKmh),
		drone.setBatteryPercent(initialBatteryPercent),
	); err != nil {
		return nil, err
	}

	drone.status = Idle
	drone.isActive = true

	return drone, nil
}

// RestoreDrone reconstructs a Drone aggregate from persistent storage.
// Unlike NewDrone it accepts the full persisted state, including the active
// order reference and delivery counter, and re-checks the aggregate invariants.
func RestoreDrone(
	id kernel.UUID,
	restaurantID kernel.UUID,
	ownerID kernel.UUID,
	name string,
	status Status,
	currentPosition kernel.GeoPoint,
	homePosition kernel.GeoPoint,
	batteryPercent float64,
	maxPayloadKg float64,
	maxSpeedKmh float64,
	currentOrderID *kernel.UUID,
	isActive bool,
	totalDeliveries int,
) (*Drone, error) {
	drone := &Drone{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		drone.setID(id),
		drone.setRestaurantID(restaurantID),
		drone.setOwnerID(ownerID),
		drone.setName(name),
		status.Validate(),
		drone.setCurrentPosition(currentPosition),
		drone.setHomePosition(homePosition),
		drone.setBatteryPercent(batteryPercent),
		drone.setMaxPayload(maxPayloadKg),
		drone.setMaxSpeed(maxSpeedKmh),
	); err != nil {
		return nil, err
	}

	if (currentOrderID != nil) != status.HasActiveOrder() {
		return nil, ErrActiveOrderMismatch
	}
	if currentOrderID != nil {
		if err := currentOrderID.Validate(); err != nil {
			return nil, err
		}
		orderID := *currentOrderID
		drone.currentOrderID = &orderID
	}

	if totalDeliveries < 0 {
		return nil, errs.NewValueIsInvalidError("totalDeliveries")
	}

	drone.status = status
	drone.isActive = isActive
	drone.totalDeliveries = totalDeliveries

	return drone, nil
}

// IsEqual compares two drones by identity.
func (d *Drone) IsEqual(other *Drone) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate checks if the Drone was properly constructed via its constructors.
func (d *Drone) Validate() error {
	if d == nil {
		return ErrDroneIsNotConstructed
	}
	return d.guard.Validate(ErrDroneIsNotConstructed)
}

// ID returns the unique identifier of the drone.
func (d *Drone) ID() kernel.UUID {
	return d.id
}

// RestaurantID returns the restaurant the drone delivers for.
func (d *Drone) RestaurantID() kernel.UUID {
	return d.restaurantID
}

// OwnerID returns the fleet operator that owns the drone.
func (d *Drone) OwnerID() kernel.UUID {
	return d.ownerID
}

// Name returns the human-readable callsign of the drone.
func (d *Drone) Name() string {
	return d.name
}

// Status returns the lifecycle state of the drone.
func (d *Drone) Status() Status {
	return d.status
}

// CurrentPosition returns the last reported position.
func (d *Drone) CurrentPosition() kernel.GeoPoint {
	return d.currentPosition
}

// HomePosition returns the base position the drone returns to.
func (d *Drone) HomePosition() kernel.GeoPoint {
	return d.homePosition
}

// BatteryPercent returns the last reported battery level in [0,100].
func (d *Drone) BatteryPercent() float64 {
	return d.batteryPercent
}

// MaxPayloadKg returns the payload capacity.
func (d *Drone) MaxPayloadKg() float64 {
	return d.maxPayloadKg
}

// MaxSpeedKmh returns the cruise speed used for ETA estimates.
func (d *Drone) MaxSpeedKmh() float64 {
	return d.maxSpeedKmh
}

// CurrentOrderID returns the active order reference, or nil when the drone
// is not delivering. The returned pointer is a copy.
func (d *Drone) CurrentOrderID() *kernel.UUID {
	if d.currentOrderID == nil {
		return nil
	}
	orderID := *d.currentOrderID
	return &orderID
}

// IsActive reports whether the drone participates in assignment.
func (d *Drone) IsActive() bool {
	return d.isActive
}

// TotalDeliveries returns the number of completed deliveries.
func (d *Drone) TotalDeliveries() int {
	return d.totalDeliveries
}

// IsAvailable reports whether the drone can be offered for reservation:
// idle, active, and holding at least minBatteryPercent of charge.
func (d *Drone) IsAvailable(minBatteryPercent float64) bool {
	return d.status == Idle && d.isActive && d.batteryPercent >= minBatteryPercent
}

// Reserve assigns an order to the drone and transitions it to Delivering.
// Fails with a StateConflictError when the drone is not Idle or has been
// force-disabled. The caller must hold the per-drone lock so that two
// concurrent reservations cannot both observe Idle.
func (d *Drone) Reserve(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if !d.isActive {
		return errs.NewStateConflictError("drone", "disabled", "be reserved")
	}

	next, err := d.status.Reserve()
	if err != nil {
		return err
	}

	d.status = next
	d.currentOrderID = &orderID
	return nil
}

// CompleteDelivery finishes the active delivery: the drone drops its
// active-order reference, consumes the battery spent on the actual flown
// distance, increments the delivery counter, and heads home as Returning.
//
// Fails with a StateConflictError unless the drone is Delivering, which
// makes redelivered completion events harmless.
func (d *Drone) CompleteDelivery(actualDistanceKm float64, consumptionPerKm float64) error {
	if actualDistanceKm < 0 {
		return errs.NewValueIsInvalidError("actualDistanceKm")
	}

	next, err := d.status.Complete()
	if err != nil {
		return err
	}

	d.status = next
	d.currentOrderID = nil
	d.totalDeliveries++
	d.drainBattery(kernel.BatteryConsumed(actualDistanceKm, consumptionPerKm))
	return nil
}

// ReturnToBase lands the drone at its home position and makes it Idle again.
// Fails with a StateConflictError if the drone is not Returning.
func (d *Drone) ReturnToBase() error {
	next, err := d.status.ReturnToBase()
	if err != nil {
		return err
	}

	d.status = next
	d.currentPosition = d.homePosition
	return nil
}

// ReleaseToIdle forces the drone back to Idle and clears the active-order
// reference. Idempotent: releasing an already idle drone succeeds without
// any state change, because the completion events that trigger a release may
// be redelivered.
func (d *Drone) ReleaseToIdle() error {
	next, err := d.status.Release()
	if err != nil {
		return err
	}

	d.status = next
	d.currentOrderID = nil
	return nil
}

// MarkMaintenance takes the drone out of rotation.
// Only the owning operator may do this; fails with a NotAuthorizedError
// otherwise, and with a StateConflictError while the drone is Delivering.
func (d *Drone) MarkMaintenance(requesterID kernel.UUID) error {
	if err := d.authorizeOwner(requesterID, "mark maintenance"); err != nil {
		return err
	}

	next, err := d.status.EnterMaintenance()
	if err != nil {
		return err
	}

	d.status = next
	return nil
}

// MarkReady puts a maintained drone back into rotation.
// Only the owning operator may do this.
func (d *Drone) MarkReady(requesterID kernel.UUID) error {
	if err := d.authorizeOwner(requesterID, "mark ready"); err != nil {
		return err
	}

	next, err := d.status.ExitMaintenance()
	if err != nil {
		return err
	}

	d.status = next
	return nil
}

// Deactivate force-disables the drone so it is never offered for assignment.
// Fails with a StateConflictError while the drone is flying an order.
// Authorization (admin role) is enforced by the calling use case.
func (d *Drone) Deactivate() error {
	if d.status == Delivering {
		return errs.NewStateConflictError("drone", d.status.String(), "be deactivated")
	}

	d.isActive = false
	return nil
}

// Activate re-enables a force-disabled drone.
func (d *Drone) Activate() {
	d.isActive = true
}

// UpdatePosition records a telemetry sample: the reported position always
// overwrites the current one, and the battery level is updated when the
// report carries it.
func (d *Drone) UpdatePosition(position kernel.GeoPoint, batteryPercent *float64) error {
	if err := d.setCurrentPosition(position); err != nil {
		return err
	}

	if batteryPercent != nil {
		if err := d.setBatteryPercent(*batteryPercent); err != nil {
			return err
		}
	}

	return nil
}

// authorizeOwner checks that the requester owns the drone.
func (d *Drone) authorizeOwner(requesterID kernel.UUID, action string) error {
	if err := requesterID.Validate(); err != nil {
		return err
	}

	if !d.ownerID.IsEqual(requesterID) {
		return errs.NewNotAuthorizedError(requesterID.String(), action+" on drone "+d.id.String())
	}

	return nil
}

// drainBattery subtracts consumed charge, clamping at the range floor.
func (d *Drone) drainBattery(consumedPercent float64) {
	d.batteryPercent -= consumedPercent
	if d.batteryPercent < batteryMin {
		d.batteryPercent = batteryMin
	}
}

// setID sets the drone's unique identifier with validation.
func (d *Drone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	d.id = id
	return nil
}

// setRestaurantID sets the owning-restaurant reference with validation.
func (d *Drone) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}

	d.restaurantID = restaurantID
	return nil
}

// setOwnerID sets the fleet-operator reference with validation.
func (d *Drone) setOwnerID(ownerID kernel.UUID) error {
	if err := ownerID.Validate(); err != nil {
		return err
	}

	d.ownerID = ownerID
	return nil
}

// setName sets the drone's callsign with validation.
func (d *Drone) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	d.name = name
	return nil
}

// setCurrentPosition sets the reported position with validation.
func (d *Drone) setCurrentPosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	d.currentPosition = position
	return nil
}

// setHomePosition sets the base position with validation.
func (d *Drone) setHomePosition(position kernel.GeoPoint) error {
	if err := position.Validate(); err != nil {
		return err
	}

	d.homePosition = position
	return nil
}

// setBatteryPercent sets the battery level with range validation.
func (d *Drone) setBatteryPercent(batteryPercent float64) error {
	if batteryPercent < batteryMin || batteryPercent > batteryMax {
		return errs.NewValueIsOutOfRangeError("batteryPercent", batteryPercent, batteryMin, batteryMax)
	}

	d.batteryPercent = batteryPercent
	return nil
}

// setMaxPayload sets the payload capacity with validation.
func (d *Drone) setMaxPayload(maxPayloadKg float64) error {
	if maxPayloadKg <= 0 {
		return ErrMaxPayloadIsRequired
	}

	d.maxPayloadKg = maxPayloadKg
	return nil
}

// setMaxSpeed sets the cruise speed with validation.
func (d *Drone) setMaxSpeed(maxSpeedKmh float64) error {
	if maxSpeedKmh <= 0 {
		return ErrMaxSpeedIsRequired
	}

	d.maxSpeedKmh = maxSpeedKmh
	return nil
}

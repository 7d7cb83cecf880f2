// Package drone contains the Drone aggregate of the fleet registry.
//
// The aggregate owns the drone lifecycle state machine (idle, delivering,
// returning, charging, maintenance), the active-order reference, and the
// battery/position mirror fed by telemetry. Reservation is a check-and-set on
// the Idle state; the persistence layer serializes it per drone with a locked
// fetch so two concurrent reservations cannot both succeed.
package drone

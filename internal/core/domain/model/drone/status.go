package drone

import (
	"fmt"

	"dronefleet/internal/pkg/errs"
)

// Status represents the lifecycle state of a drone.
// It implements a state machine with defined transitions:
//
//	IDLE ──(reserve)──> DELIVERING ──(complete)──> RETURNING ──(return to base)──> IDLE
//	IDLE|RETURNING <──(operator)──> MAINTENANCE
//
// CHARGING is a valid persisted state managed by the charging dock
// integration; no operational transition leads into it, and any transition
// request made against a charging drone fails with a state conflict.
//
// Status is a value object that validates transitions and provides the wire
// representation used for persistence and event payloads.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Idle means the drone is at base, charged enough to fly, and available
	// for reservation.
	Idle

	// Delivering means the drone is reserved and flying an active order.
	// A drone holds an active-order reference exactly while in this state.
	Delivering

	// Returning means the drone has completed its delivery and is flying
	// back to its home position.
	Returning

	// Charging means the drone is docked and recharging.
	Charging

	// Maintenance means the drone has been taken out of rotation by its
	// operator.
	Maintenance
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:     "UNKNOWN",
		Idle:        "IDLE",
		Delivering:  "DELIVERING",
		Returning:   "RETURNING",
		Charging:    "CHARGING",
		Maintenance: "MAINTENANCE",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Idle:        "IDLE",
		Delivering:  "DELIVERING",
		Returning:   "RETURNING",
		Charging:    "CHARGING",
		Maintenance: "MAINTENANCE",
	}
}

// StatusFromString parses a persisted or wire status value.
// Returns an error for anything outside the valid set.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid drone status", s))
}

// Validate checks if the Status value is valid.
// Valid statuses are Idle, Delivering, Returning, Charging, and Maintenance.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid drone status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements the fmt.Stringer interface and is safe to call on any Status
// value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// HasActiveOrder reports whether a drone in this status carries an
// active-order reference.
func (s Status) HasActiveOrder() bool {
	return s == Delivering
}

// Reserve transitions the status to Delivering.
//
// Valid transitions:
//   - Idle -> Delivering
//
// Any other source status fails with a StateConflictError. The atomicity of
// the surrounding check-and-set is the caller's responsibility; see the
// repository's locked fetch.
func (s Status) Reserve() (Status, error) {
	if s != Idle {
		return Unknown, errs.NewStateConflictError("drone", s.String(), "be reserved")
	}
	return Delivering, nil
}

// Complete transitions the status to Returning after the delivery finished.
//
// Valid transitions:
//   - Delivering -> Returning
func (s Status) Complete() (Status, error) {
	if s != Delivering {
		return Unknown, errs.NewStateConflictError("drone", s.String(), "complete a delivery")
	}
	return Returning, nil
}

// ReturnToBase transitions the status to Idle when the drone lands home.
//
// Valid transitions:
//   - Returning -> Idle
func (s Status) ReturnToBase() (Status, error) {
	if s != Returning {
		return Unknown, errs.NewStateConflictError("drone", s.String(), "return to base")
	}
	return Idle, nil
}

// Release transitions the status to Idle, clearing any in-flight state.
// Idempotent: releasing an already idle drone is a no-op success, because
// completion events may be redelivered.
//
// Valid transitions:
//   - Delivering -> Idle
//   - Returning -> Idle
//   - Idle -> Idle
func (s Status) Release() (Status, error) {
	switch s {
	case Delivering, Returning, Idle:
		return Idle, nil
	default:
		return Unknown, errs.NewStateConflictError("drone", s.String(), "be released")
	}
}

// EnterMaintenance transitions the status to Maintenance via operator action.
//
// Valid transitions:
//   - Idle -> Maintenance
//   - Returning -> Maintenance
func (s Status) EnterMaintenance() (Status, error) {
	if s != Idle && s != Returning {
		return Unknown, errs.NewStateConflictError("drone", s.String(), "enter maintenance")
	}
	return Maintenance, nil
}

// ExitMaintenance transitions the status back to Idle via operator action.
//
// Valid transitions:
//   - Maintenance -> Idle
func (s Status) ExitMaintenance() (Status, error) {
	if s != Maintenance {
		return Unknown, errs.NewStateConflictError("drone", s.String(), "exit maintenance")
	}
	return Idle, nil
}

package deliverylog

import (
	"fmt"

	"dronefleet/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery log.
//
//	PREPARING ──(first sample)──> IN_FLIGHT ──> ARRIVED ──> COMPLETED
//	                                   │                        ^
//	                                   └────────────────────────┘
//	                              (arrival event may be skipped)
//
// FAILED and CANCELLED are reachable from any non-terminal state.
// COMPLETED, FAILED, and CANCELLED are terminal: no further telemetry or
// transition is accepted once reached.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Preparing is the initial status: the record exists, the drone has not
	// reported a flight position yet.
	Preparing

	// InFlight means telemetry has started flowing for this delivery.
	InFlight

	// Arrived means the drone reported arrival at the destination.
	Arrived

	// Completed means the delivery finished and the record was finalized.
	Completed

	// Failed means the delivery was aborted due to a fault.
	Failed

	// Cancelled means the delivery was called off before completion.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "UNKNOWN",
		Preparing: "PREPARING",
		InFlight:  "IN_FLIGHT",
		Arrived:   "ARRIVED",
		Completed: "COMPLETED",
		Failed:    "FAILED",
		Cancelled: "CANCELLED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Preparing: "PREPARING",
		InFlight:  "IN_FLIGHT",
		Arrived:   "ARRIVED",
		Completed: "COMPLETED",
		Failed:    "FAILED",
		Cancelled: "CANCELLED",
	}
}

// StatusFromString parses a persisted status value.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid delivery log status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid delivery log status", s))
	}
	return nil
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// IsTerminal reports whether the status accepts no further transitions.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Failed || s == Cancelled
}

// StartFlight transitions the status to InFlight on the first telemetry
// sample.
//
// Valid transitions:
//   - Preparing -> InFlight
func (s Status) StartFlight() (Status, error) {
	if s != Preparing {
		return Unknown, errs.NewStateConflictError("delivery log", s.String(), "start its flight")
	}
	return InFlight, nil
}

// Arrive transitions the status to Arrived.
//
// Valid transitions:
//   - InFlight -> Arrived
func (s Status) Arrive() (Status, error) {
	if s != InFlight {
		return Unknown, errs.NewStateConflictError("delivery log", s.String(), "be marked arrived")
	}
	return Arrived, nil
}

// Complete transitions the status to Completed.
// InFlight is accepted alongside Arrived to tolerate a skipped arrival
// event.
//
// Valid transitions:
//   - Arrived -> Completed
//   - InFlight -> Completed
func (s Status) Complete() (Status, error) {
	if s != Arrived && s != InFlight {
		return Unknown, errs.NewStateConflictError("delivery log", s.String(), "be completed")
	}
	return Completed, nil
}

// Fail transitions the status to Failed from any non-terminal state.
func (s Status) Fail() (Status, error) {
	if s.IsTerminal() {
		return Unknown, errs.NewStateConflictError("delivery log", s.String(), "be failed")
	}
	return Failed, nil
}

// Cancel transitions the status to Cancelled from any non-terminal state.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return Unknown, errs.NewStateConflictError("delivery log", s.String(), "be cancelled")
	}
	return Cancelled, nil
}

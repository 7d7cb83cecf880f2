package order

import (
	"fmt"

	"dronefleet/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// Every edge of the state machine is gated by role; the full edge set lives
// in the transition table in order.go and is evaluated once per transition
// request.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Pending is the initial status: the order exists, payment and
	// restaurant confirmation are outstanding.
	Pending

	// Confirmed means the restaurant accepted the order or payment was
	// confirmed.
	Confirmed

	// Processing means the restaurant is preparing the order.
	Processing

	// Shipped means a drone was reserved and is flying the order.
	Shipped

	// Delivered means the drone arrived at the destination.
	Delivered

	// CancellationRequested means the restaurant asked to cancel and an
	// admin decision is pending.
	CancellationRequested

	// Cancelled means the order was called off.
	Cancelled

	// Refunded means a cancelled, paid order had its payment returned.
	Refunded

	// Completed means the customer accepted the delivery; final state.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:         "UNKNOWN",
		Pending:               "PENDING",
		Confirmed:             "CONFIRMED",
		Processing:            "PROCESSING",
		Shipped:               "SHIPPED",
		Delivered:             "DELIVERED",
		CancellationRequested: "CANCELLATION_REQUESTED",
		Cancelled:             "CANCELLED",
		Refunded:              "REFUNDED",
		Completed:             "COMPLETED",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:               "PENDING",
		Confirmed:             "CONFIRMED",
		Processing:            "PROCESSING",
		Shipped:               "SHIPPED",
		Delivered:             "DELIVERED",
		CancellationRequested: "CANCELLATION_REQUESTED",
		Cancelled:             "CANCELLED",
		Refunded:              "REFUNDED",
		Completed:             "COMPLETED",
	}
}

// StatusFromString parses a persisted or wire status value.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid", fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid", fmt.Errorf("%d is not a valid order status", s))
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

// IsTerminal reports whether the order accepts no further transitions except
// an admin refund of a cancelled order.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled || s == Refunded
}

package order

import (
	"fmt"

	"dronefleet/internal/pkg/errs"
)

// PaymentStatus represents the payment state of an order.
// The payment provider protocol itself is an external collaborator; only the
// confirmed/refunded outcomes are tracked here.
type PaymentStatus int

const (
	// PaymentUnknown represents an invalid or undefined payment status.
	PaymentUnknown PaymentStatus = iota

	// PaymentPending means a payment attempt is in progress.
	PaymentPending

	// PaymentPaid means the payment was confirmed.
	PaymentPaid

	// PaymentUnpaid is the initial state: no payment attempt yet.
	PaymentUnpaid

	// PaymentRefunded means a completed payment was returned.
	PaymentRefunded

	// PaymentCancelled means the payment was called off before completion.
	PaymentCancelled
)

func getPaymentStatusStrings() map[PaymentStatus]string {
	return map[PaymentStatus]string{
		PaymentUnknown:   "UNKNOWN",
		PaymentPending:   "PENDING",
		PaymentPaid:      "PAID",
		PaymentUnpaid:    "UNPAID",
		PaymentRefunded:  "REFUNDED",
		PaymentCancelled: "CANCELLED",
	}
}

func getValidPaymentStatusStrings() map[PaymentStatus]string {
	//nolint:exhaustive // PaymentUnknown is intentionally excluded as it's invalid
	return map[PaymentStatus]string{
		PaymentPending:   "PENDING",
		PaymentPaid:      "PAID",
		PaymentUnpaid:    "UNPAID",
		PaymentRefunded:  "REFUNDED",
		PaymentCancelled: "CANCELLED",
	}
}

// PaymentStatusFromString parses a persisted payment status value.
func PaymentStatusFromString(s string) (PaymentStatus, error) {
	for status, str := range getValidPaymentStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment status is invalid", fmt.Errorf("%q is not a valid payment status", s))
}

// Validate checks if the PaymentStatus value is valid.
func (s PaymentStatus) Validate() error {
	if _, ok := getValidPaymentStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"payment status is invalid", fmt.Errorf("%d is not a valid payment status", s))
	}
	return nil
}

// String returns the wire representation of the payment status.
func (s PaymentStatus) String() string {
	if str, ok := getPaymentStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// Confirm transitions the payment to Paid on a payment-confirmed signal.
//
// Valid transitions:
//   - Unpaid -> Paid
//   - Pending -> Paid
func (s PaymentStatus) Confirm() (PaymentStatus, error) {
	if s != PaymentUnpaid && s != PaymentPending {
		return PaymentUnknown, errs.NewStateConflictError("payment", s.String(), "be confirmed")
	}
	return PaymentPaid, nil
}

// Cancel transitions an unfinished payment to Cancelled.
// A confirmed payment cannot be cancelled, only refunded.
//
// Valid transitions:
//   - Unpaid -> Cancelled
//   - Pending -> Cancelled
func (s PaymentStatus) Cancel() (PaymentStatus, error) {
	if s != PaymentUnpaid && s != PaymentPending {
		return PaymentUnknown, errs.NewStateConflictError("payment", s.String(), "be cancelled")
	}
	return PaymentCancelled, nil
}

// Refund transitions a confirmed payment to Refunded.
//
// Valid transitions:
//   - Paid -> Refunded
func (s PaymentStatus) Refund() (PaymentStatus, error) {
	if s != PaymentPaid {
		return PaymentUnknown, errs.NewStateConflictError("payment", s.String(), "be refunded")
	}
	return PaymentRefunded, nil
}

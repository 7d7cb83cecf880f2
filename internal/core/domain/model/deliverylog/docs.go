// Package deliverylog contains the DeliveryLog aggregate of the delivery
// ledger.
//
// A delivery log is the flight record of one assignment: an append-only GPS
// trail, lifecycle timestamps, and the reconciliation of planned against
// actual distance when the flight completes. Terminal records reject all
// further telemetry and transitions; producers cannot always know the current
// state, so callers drop those rejections with a warning instead of
// escalating them.
package deliverylog

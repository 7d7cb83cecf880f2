// Package order contains the Order aggregate of the order coordinator.
//
// The aggregate owns the order lifecycle state machine, the payment state,
// and the assigned-drone reference. Every edge of the state machine is gated
// by role (customer, restaurant, admin, or system for event-driven
// transitions) and evaluated against a single transition table; nothing
// outside the aggregate writes the order or payment status.
package order

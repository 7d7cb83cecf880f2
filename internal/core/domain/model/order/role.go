package order

import (
	"fmt"

	"dronefleet/internal/pkg/errs"
)

// Role identifies who is requesting an order transition.
// Every status edge is gated by the set of roles allowed to take it.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleCustomer is the ordering customer.
	RoleCustomer

	// RoleRestaurant is the restaurant preparing the order.
	RoleRestaurant

	// RoleAdmin is a platform administrator.
	RoleAdmin

	// RoleSystem marks event-driven transitions: payment confirmation,
	// reservation, arrival, and delivery completion.
	RoleSystem
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:    "UNKNOWN",
		RoleCustomer:   "CUSTOMER",
		RoleRestaurant: "RESTAURANT",
		RoleAdmin:      "ADMIN",
		RoleSystem:     "SYSTEM",
	}
}

func getValidRoleStrings() map[Role]string {
	//nolint:exhaustive // RoleUnknown is intentionally excluded as it's invalid
	return map[Role]string{
		RoleCustomer:   "CUSTOMER",
		RoleRestaurant: "RESTAURANT",
		RoleAdmin:      "ADMIN",
		RoleSystem:     "SYSTEM",
	}
}

// RoleFromString parses a role claim from a request.
func RoleFromString(s string) (Role, error) {
	for role, str := range getValidRoleStrings() {
		if str == s {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role is invalid", fmt.Errorf("%q is not a valid role", s))
}

// Validate checks if the Role value is valid.
func (r Role) Validate() error {
	if _, ok := getValidRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the wire representation of the role.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "UNKNOWN"
}

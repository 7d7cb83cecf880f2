// Package services provides domain services that orchestrate business
// operations across multiple domain entities in the fleet coordination
// system. It implements business workflows that don't naturally belong to a
// single aggregate root.
//
// The package includes:
//   - FlightPlanner: a domain service deciding whether a drone can fly an
//     order to a destination within range and battery limits
//
// Domain services coordinate between aggregates, implementing business logic
// that spans multiple bounded contexts following Domain-Driven Design
// principles.
package services

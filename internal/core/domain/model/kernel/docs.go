// Package kernel provides core domain primitives shared across the fleet
// coordination model.
//
// The package includes:
//   - UUID: a value object for unique identifiers with validation and comparison
//   - GeoPoint: a validated geographic position with great-circle flight math
//   - feasibility helpers: ETA, battery consumption, and the reserve-floor check
//
// These primitives enforce domain invariants at construction time so that the
// aggregates built on top of them never hold an out-of-range coordinate or a
// nil identifier. They are immutable and safe for concurrent use.
package kernel

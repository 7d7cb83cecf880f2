// Package errs provides standardized error types for the fleet application.
// It implements a consistent pattern for error creation, formatting, and
// unwrapping used throughout the codebase.
//
// Each error type follows the same shape:
//   - a sentinel error variable (e.g. ErrStateConflict)
//   - a struct type carrying error details
//   - constructor functions with and without a cause
//   - Error() for formatting and Unwrap() for classification via errors.Is
//
// Beyond generic validation errors, the package carries the domain taxonomy
// of the assignment workflow: ObjectNotFoundError for absent entities,
// StateConflictError for state-machine violations, RangeExceededError and
// InsufficientBatteryError for rejected-assignment feasibility failures, and
// NotAuthorizedError for role or ownership mismatches.
package errs

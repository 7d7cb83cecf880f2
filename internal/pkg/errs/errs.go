package errs

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for classification with errors.Is.
var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrVersionIsInvalid    = errors.New("version is invalid")
	ErrStateConflict       = errors.New("state conflict")
	ErrRangeExceeded       = errors.New("delivery range exceeded")
	ErrInsufficientBattery = errors.New("insufficient battery")
	ErrNotAuthorized       = errors.New("not authorized")
)

// sanitize flattens newlines so error messages stay single-line in logs.
func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

// ObjectNotFoundError indicates that a requested entity does not exist.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %s)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, sanitize(e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError indicates a value that fails business validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError indicates a numeric value outside its permitted bounds.
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(paramName string, value, minValue, maxValue any, cause error) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v (cause: %s)",
			ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max, e.Cause)
	}
	return fmt.Sprintf("%s: %s is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, e.Min, e.Max)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError indicates a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// StateConflictError indicates a violated state-machine transition or an
// operation attempted against an entity in an incompatible state, such as
// reserving a drone that is not idle.
type StateConflictError struct {
	Entity  string
	Current string
	Attempt string
	Cause   error
}

func NewStateConflictError(entity, current, attempt string) *StateConflictError {
	return &StateConflictError{Entity: entity, Current: current, Attempt: attempt}
}

func NewStateConflictErrorWithCause(entity, current, attempt string, cause error) *StateConflictError {
	return &StateConflictError{Entity: entity, Current: current, Attempt: attempt, Cause: cause}
}

func (e *StateConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s cannot %s while %s (cause: %s)",
			ErrStateConflict, e.Entity, e.Attempt, e.Current, e.Cause)
	}
	return fmt.Sprintf("%s: %s cannot %s while %s", ErrStateConflict, e.Entity, e.Attempt, e.Current)
}

func (e *StateConflictError) Unwrap() error {
	return ErrStateConflict
}

// RangeExceededError indicates that a requested delivery distance exceeds the
// configured maximum range. Reported to the caller as a rejected assignment.
type RangeExceededError struct {
	DistanceKm float64
	MaxKm      float64
}

func NewRangeExceededError(distanceKm, maxKm float64) *RangeExceededError {
	return &RangeExceededError{DistanceKm: distanceKm, MaxKm: maxKm}
}

func (e *RangeExceededError) Error() string {
	return fmt.Sprintf("%s: %.2f km exceeds maximum of %.2f km", ErrRangeExceeded, e.DistanceKm, e.MaxKm)
}

func (e *RangeExceededError) Unwrap() error {
	return ErrRangeExceeded
}

// InsufficientBatteryError indicates that a drone would drop below the battery
// reserve floor if it flew the requested distance.
type InsufficientBatteryError struct {
	CurrentPercent  float64
	RequiredPercent float64
	FloorPercent    float64
}

func NewInsufficientBatteryError(currentPercent, requiredPercent, floorPercent float64) *InsufficientBatteryError {
	return &InsufficientBatteryError{
		CurrentPercent:  currentPercent,
		RequiredPercent: requiredPercent,
		FloorPercent:    floorPercent,
	}
}

func (e *InsufficientBatteryError) Error() string {
	return fmt.Sprintf("%s: %.1f%% available, trip needs %.1f%% with a %.1f%% reserve floor",
		ErrInsufficientBattery, e.CurrentPercent, e.RequiredPercent, e.FloorPercent)
}

func (e *InsufficientBatteryError) Unwrap() error {
	return ErrInsufficientBattery
}

// NotAuthorizedError indicates a role or ownership mismatch for the attempted
// operation.
type NotAuthorizedError struct {
	Requester string
	Action    string
}

func NewNotAuthorizedError(requester, action string) *NotAuthorizedError {
	return &NotAuthorizedError{Requester: requester, Action: action}
}

func (e *NotAuthorizedError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrNotAuthorized, e.Requester, e.Action)
}

func (e *NotAuthorizedError) Unwrap() error {
	return ErrNotAuthorized
}

// VersionIsInvalidError indicates an aggregate version mismatch.
type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func NewVersionIsInvalidErrorWithCause(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *VersionIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %s)", ErrVersionIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

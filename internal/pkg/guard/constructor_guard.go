// Package guard provides a small defensive-construction helper shared by
// value objects and commands. Embedding a ConstructorGuard lets a type detect
// whether it was created through its constructor or left as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific
// validation error is supplied for an unconstructed object.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks an object as properly constructed.
// The zero value is not constructed and fails validation.
//
// Example:
//
//	type Money struct {
//	    amount int
//	    guard  guard.ConstructorGuard
//	}
//
//	func NewMoney(amount int) Money {
//	    return Money{amount: amount, guard: guard.NewConstructorGuard()}
//	}
//
//	func (m Money) Validate() error {
//	    return m.guard.Validate(ErrMoneyIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
// Call it from the constructor of the guarded type.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil if the guarded object was properly constructed,
// otherwise the supplied validationError (or ErrDefaultConstructorGuard
// when validationError is nil).
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

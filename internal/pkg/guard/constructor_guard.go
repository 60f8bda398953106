// Package guard lets value types detect that they were built through their
// constructor rather than as a zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is given.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in queries and options that must not be used as
// zero values. The flag is only set by NewConstructorGuard.
//
//	type PlanTransferPackingQuery struct {
//	    transferID kernel.UUID
//	    guard      guard.ConstructorGuard
//	}
//
//	func (q PlanTransferPackingQuery) Validate() error {
//	    return q.guard.Validate(ErrPlanTransferPackingQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning value as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil) if
// the owner is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}

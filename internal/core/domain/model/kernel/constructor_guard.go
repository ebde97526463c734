package kernel

import "errors"

// ErrDefaultConstructorGuard is returned by ConstructorGuard.Validate when a nil
// error is passed as the validation error, so that validation always fails with
// a meaningful message.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard distinguishes objects built through their designated
// constructor from zero-value instances. Embedding a guard in a struct lets
// Validate detect structs that bypassed construction and therefore skipped
// their invariant checks.
//
// Example:
//
//	type Session struct {
//	    restaurantID string
//	    guard        ConstructorGuard
//	}
//
//	func NewSession(restaurantID string) (Session, error) {
//	    if restaurantID == "" {
//	        return Session{}, errors.New("restaurantID is required")
//	    }
//	    return Session{restaurantID: restaurantID, guard: NewConstructorGuard()}, nil
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a guard marking an object as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns nil when the guarded object came from its constructor.
// Otherwise it returns validationError, or ErrDefaultConstructorGuard when
// validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
